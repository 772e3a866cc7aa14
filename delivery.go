package amojo

import (
	"context"
	"net/http"
)

// Delivery status codes of the chat API.
const (
	DeliveryError     = -1
	DeliveryDelivered = 1
	DeliveryRead      = 2
)

type deliveryStatusRequest struct {
	MsgID          string `json:"msgid,omitempty"`
	DeliveryStatus *int   `json:"delivery_status,omitempty"`
	ErrorCode      *int   `json:"error_code,omitempty"`
	Error          string `json:"error,omitempty"`
}

// DeliveryStatusOptions are the inputs of a delivery status update.
// Optional codes are pointers so zero-valued statuses stay expressible.
type DeliveryStatusOptions struct {
	// Id of the delivered (or failed) message. Required for dispatch.
	MsgID string
	// Delivery status code; DeliveryError, DeliveryDelivered, DeliveryRead.
	DeliveryStatus *int
	// Error code accompanying DeliveryError.
	ErrorCode *int
	// Human readable error text.
	Error string
}

// SetDeliveryStatus reports the delivery state of a sent message.
// At least one of the fields must be set, and the status is addressed
// to a concrete message, so MsgID is required regardless.
func (c *Client) SetDeliveryStatus(ctx context.Context, opts DeliveryStatusOptions) error {

	if opts.MsgID == "" && opts.DeliveryStatus == nil &&
		opts.ErrorCode == nil && opts.Error == "" {
		return validationError("need msgid, delivery_status, error_code or error")
	}
	if opts.MsgID == "" {
		return validationError("msgid is required")
	}

	req := deliveryStatusRequest{
		MsgID:          opts.MsgID,
		DeliveryStatus: opts.DeliveryStatus,
		ErrorCode:      opts.ErrorCode,
		Error:          opts.Error,
	}

	return c.do(ctx, http.MethodPost,
		c.scopePath("/"+opts.MsgID+"/delivery_status"), req, nil,
	)
}
