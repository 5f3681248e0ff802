package errors

// Error codes used across the framework. Codes are stable identifiers;
// messages may be reworded freely.
const (
	// Runtime (view lifecycle).
	CodeViewAlreadyHydrated = "F101"
	CodeViewNotHydrated     = "F102"
	CodeUndeclaredBinding   = "F103"
	CodeViewPortDehydrated  = "F104"

	// Binding (expressions, record ranges).
	CodeUnknownFormatter = "F201"
	CodeExprNotInvocable = "F202"

	// Dependency injection.
	CodeUnknownToken   = "F301"
	CodeCyclicProvider = "F302"

	// Protocol.
	CodeFrameTooLarge  = "F401"
	CodeTruncatedFrame = "F402"
	CodeUnknownFrame   = "F403"

	// Config.
	CodeConfigNotFound = "F501"
	CodeConfigInvalid  = "F502"

	// Upload.
	CodeUploadTooLarge = "F601"
	CodeUploadNotFound = "F602"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeViewAlreadyHydrated: {
		Category: CategoryRuntime,
		Message:  "view is already hydrated",
		Detail:   "Hydrate was called on a view that is already in the hydrated state. A view must be dehydrated before it can be hydrated again.",
		DocURL:   "https://facet-ui.dev/docs/errors/F101",
	},
	CodeViewNotHydrated: {
		Category: CategoryRuntime,
		Message:  "view is not hydrated",
		Detail:   "The operation requires a hydrated view. Call Hydrate with an injector and a context first.",
		DocURL:   "https://facet-ui.dev/docs/errors/F102",
	},
	CodeUndeclaredBinding: {
		Category: CategoryRuntime,
		Message:  "local binding is not declared",
		Detail:   "SetLocal was called with a name that the proto view's variable-binding table does not declare. Locals must be declared in the template (#name) before they can be set.",
		DocURL:   "https://facet-ui.dev/docs/errors/F103",
	},
	CodeViewPortDehydrated: {
		Category: CategoryRuntime,
		Message:  "view port is dehydrated",
		Detail:   "Child views cannot be created on a dehydrated view port.",
		DocURL:   "https://facet-ui.dev/docs/errors/F104",
	},
	CodeUnknownFormatter: {
		Category: CategoryBinding,
		Message:  "unknown formatter",
		Detail:   "The expression references a formatter that was not supplied when the record range was instantiated.",
		DocURL:   "https://facet-ui.dev/docs/errors/F201",
	},
	CodeExprNotInvocable: {
		Category: CategoryBinding,
		Message:  "expression target is not invocable",
		Detail:   "An event expression tried to call something that is not a method on the current context.",
		DocURL:   "https://facet-ui.dev/docs/errors/F202",
	},
	CodeUnknownToken: {
		Category: CategoryDI,
		Message:  "no provider for token",
		Detail:   "The injector chain has no binding for the requested token.",
		DocURL:   "https://facet-ui.dev/docs/errors/F301",
	},
	CodeCyclicProvider: {
		Category: CategoryDI,
		Message:  "cyclic provider dependency",
		Detail:   "A provider factory requested, directly or indirectly, the token it is constructing.",
		DocURL:   "https://facet-ui.dev/docs/errors/F302",
	},
	CodeFrameTooLarge: {
		Category: CategoryProtocol,
		Message:  "frame exceeds size limit",
		DocURL:   "https://facet-ui.dev/docs/errors/F401",
	},
	CodeTruncatedFrame: {
		Category: CategoryProtocol,
		Message:  "truncated frame",
		DocURL:   "https://facet-ui.dev/docs/errors/F402",
	},
	CodeUnknownFrame: {
		Category: CategoryProtocol,
		Message:  "unknown frame type",
		DocURL:   "https://facet-ui.dev/docs/errors/F403",
	},
	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "facet.yaml not found",
		Detail:   "No facet.yaml was found in the working directory or any parent directory.",
		DocURL:   "https://facet-ui.dev/docs/errors/F501",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "invalid configuration",
		DocURL:   "https://facet-ui.dev/docs/errors/F502",
	},
	CodeUploadTooLarge: {
		Category: CategoryUpload,
		Message:  "upload exceeds size limit",
		DocURL:   "https://facet-ui.dev/docs/errors/F601",
	},
	CodeUploadNotFound: {
		Category: CategoryUpload,
		Message:  "upload not found",
		DocURL:   "https://facet-ui.dev/docs/errors/F602",
	},
}

// Registered reports whether a code is present in the registry.
func Registered(code string) bool {
	_, ok := registry[code]
	return ok
}
