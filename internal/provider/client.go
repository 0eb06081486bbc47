package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an upstream error body is retained
// for pass-through.
const maxErrorBody = 64 << 10

// Params are the partner-level parameters sent on every price request.
type Params struct {
	PartnerID   string
	Currency    string
	CountryCode string
	Locale      string
}

// Client talks to the upstream hotel inventory and pricing API.
type Client struct {
	baseURL string
	params  Params
	client  *http.Client
}

// NewClient constructs a Client for the given base URL. A non-positive
// timeout falls back to 10 seconds.
func NewClient(baseURL string, params Params, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		params:  params,
		client:  &http.Client{Timeout: timeout},
	}
}

// get performs a GET request and decodes the JSON response into dst.
// Non-2xx responses become *UpstreamError with the body preserved verbatim.
func (c *Client) get(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{
			StatusCode:  resp.StatusCode,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// priceValues builds the shared query parameters for the price endpoints.
func (c *Client) priceValues(q PriceQuery) url.Values {
	v := url.Values{}
	v.Set("destination_id", q.DestinationID)
	v.Set("checkin", q.CheckIn)
	v.Set("checkout", q.CheckOut)
	v.Set("guests", q.GuestsParam())
	v.Set("partner_id", c.params.PartnerID)
	v.Set("currency", c.params.Currency)
	v.Set("country_code", c.params.CountryCode)
	v.Set("lang", c.params.Locale)
	return v
}

// FetchHotels retrieves the hotel metadata list for a destination.
func (c *Client) FetchHotels(ctx context.Context, destinationID string) ([]Hotel, error) {
	endpoint := c.baseURL + "/hotels?destination_id=" + url.QueryEscape(destinationID)

	var hotels []Hotel
	if err := c.get(ctx, endpoint, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

// FetchPrices retrieves the asynchronous price quote set for a destination
// and stay. The set may come back with Completed=false; completion polling
// is the Fetcher's job.
func (c *Client) FetchPrices(ctx context.Context, q PriceQuery) (QuoteSet, error) {
	endpoint := c.baseURL + "/hotels/prices?" + c.priceValues(q).Encode()

	var quotes QuoteSet
	if err := c.get(ctx, endpoint, &quotes); err != nil {
		return QuoteSet{}, err
	}
	return quotes, nil
}

// FetchRoomOffers retrieves room-level prices for a single hotel.
// Shares the asynchronous completion contract with FetchPrices.
func (c *Client) FetchRoomOffers(ctx context.Context, hotelID string, q PriceQuery) (RoomOfferSet, error) {
	endpoint := c.baseURL + "/hotels/" + url.PathEscape(hotelID) + "/price?" + c.priceValues(q).Encode()

	var offers RoomOfferSet
	if err := c.get(ctx, endpoint, &offers); err != nil {
		return RoomOfferSet{}, err
	}
	return offers, nil
}
