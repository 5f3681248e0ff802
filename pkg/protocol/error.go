package protocol

// ErrorMessage is the Error frame payload: the structured code from the
// server-side error plus a human-readable message. The client shows it and
// stops processing further frames.
type ErrorMessage struct {
	Code    string
	Message string
}

// EncodeErrorMessage encodes an ErrorMessage as an Error frame payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	return e.Bytes()
}

// DecodeErrorMessage decodes an Error frame payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: message}, nil
}
