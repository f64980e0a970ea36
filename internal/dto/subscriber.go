package dto

import "strings"

// SubscriberRequest carries the only writable subscriber field.
type SubscriberRequest struct {
	Email string `json:"email" validate:"required"`
}

// DecodeSubscriber reads and normalizes the email of a subscribe or update request.
func DecodeSubscriber(f *Form) (SubscriberRequest, error) {
	if err := f.Only("email"); err != nil {
		return SubscriberRequest{}, err
	}
	return SubscriberRequest{Email: strings.ToLower(deref(f.String("email")))}, nil
}
