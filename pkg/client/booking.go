package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"salon/pkg/model"
)

// BookingClient calls the salon booking API.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, *Response, error) {
	resp, err := c.httpClient.POST(ctx, "/api/bookings", booking)
	return decodeInto[model.Booking](resp, err, http.StatusCreated)
}

func (c *BookingClient) GetAll(ctx context.Context) ([]model.Booking, *Response, error) {
	resp, err := c.httpClient.GET(ctx, "/api/bookings")
	list, resp, err := decodeInto[[]model.Booking](resp, err, http.StatusOK)
	if list == nil {
		return nil, resp, err
	}
	return *list, resp, err
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, *Response, error) {
	resp, err := c.httpClient.GET(ctx, "/api/bookings/"+url.PathEscape(id))
	return decodeInto[model.Booking](resp, err, http.StatusOK)
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, *Response, error) {
	resp, err := c.httpClient.PUT(ctx, "/api/bookings/"+url.PathEscape(id), model.BookingUpdate{Status: status})
	return decodeInto[model.Booking](resp, err, http.StatusOK)
}

func (c *BookingClient) Delete(ctx context.Context, id string) (*Response, error) {
	resp, err := c.httpClient.DELETE(ctx, "/api/bookings/"+url.PathEscape(id))
	_, resp, err = decodeInto[map[string]string](resp, err, http.StatusOK)
	return resp, err
}

func (c *BookingClient) CheckAvailability(ctx context.Context, date string) (*model.Availability, *Response, error) {
	resp, err := c.httpClient.POST(ctx, "/api/availability", model.AvailabilityRequest{BookingDate: date})
	return decodeInto[model.Availability](resp, err, http.StatusOK)
}

func (c *BookingClient) AvailabilityRange(ctx context.Context, startDate, endDate string) (model.AvailabilityRange, *Response, error) {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	resp, err := c.httpClient.GET(ctx, "/api/availability/range?"+q.Encode())
	slots, resp, err := decodeInto[model.AvailabilityRange](resp, err, http.StatusOK)
	if slots == nil {
		return nil, resp, err
	}
	return *slots, resp, err
}

// APIError is returned for any response with an unexpected status code.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salon api: %d %s", e.StatusCode, e.Detail)
}

func decodeInto[T any](resp *Response, err error, want int) (*T, *Response, error) {
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode != want {
		return nil, resp, &APIError{StatusCode: resp.StatusCode, Detail: GetErrorMessage(resp)}
	}
	var v T
	if err := resp.DecodeJSON(&v); err != nil {
		return nil, resp, fmt.Errorf("could not decode response: %w", err)
	}
	return &v, resp, nil
}
