// Package shadow implements Facet's shadow-DOM strategies.
//
// A strategy decides how a component's template view is mounted under its
// host element. Native mounts the template directly and leaves host content
// alone. Emulated implements content projection without browser shadow-DOM
// support: the host's original children (its light DOM) are captured when
// the component view is constructed and redistributed into the template's
// <content> insertion points during hydration pass two.
//
// Selectors on <content select="..."> are deliberately small: a bare tag
// name, a ".class" class selector, or empty for the catch-all insertion
// point. Light-DOM nodes anchoring a view port travel together with the
// nodes their port has inserted, so structural directives keep working
// inside projected content.
package shadow
