package prayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrUpstream indicates the timings provider failed or returned garbage.
// Handlers map it to 502 so clients can tell it apart from their own bad input.
var ErrUpstream = errors.New("prayer times provider unavailable")

// ErrLocationNotFound indicates the provider does not know the requested
// city/country pair.
var ErrLocationNotFound = errors.New("location not found")

// DefaultMethod is the Al Adhan calculation method used when the caller
// does not pick one (ISNA).
const DefaultMethod = 2

// aladhanResponse is the provider's timingsByCity envelope.
type aladhanResponse struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type aladhanData struct {
	Timings aladhanTimings `json:"timings"`
	Date    aladhanDate    `json:"date"`
	Meta    aladhanMeta    `json:"meta"`
}

type aladhanTimings struct {
	Fajr       string `json:"Fajr"`
	Sunrise    string `json:"Sunrise"`
	Dhuhr      string `json:"Dhuhr"`
	Asr        string `json:"Asr"`
	Sunset     string `json:"Sunset"`
	Maghrib    string `json:"Maghrib"`
	Isha       string `json:"Isha"`
	Imsak      string `json:"Imsak"`
	Midnight   string `json:"Midnight"`
	Firstthird string `json:"Firstthird"`
	Lastthird  string `json:"Lastthird"`
}

type aladhanDate struct {
	Gregorian struct {
		Date string `json:"date"` // DD-MM-YYYY
	} `json:"gregorian"`
	Hijri struct {
		Date  string `json:"date"`
		Day   string `json:"day"`
		Year  string `json:"year"`
		Month struct {
			En string `json:"en"`
		} `json:"month"`
		Designation struct {
			Abbreviated string `json:"abbreviated"`
		} `json:"designation"`
	} `json:"hijri"`
}

type aladhanMeta struct {
	Timezone string `json:"timezone"`
}

// Client fetches daily schedules from the Al Adhan API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchByCity retrieves today's schedule for a city/country pair using the
// given calculation method. On a non-OK provider status whose message names
// an unknown location it returns ErrLocationNotFound; every other failure
// is wrapped in ErrUpstream.
func (c *Client) FetchByCity(ctx context.Context, city, country string, method int) (*Schedule, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity?%s", c.baseURL, url.Values{
		"city":    {city},
		"country": {country},
		"method":  {strconv.Itoa(method)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	var envelope aladhanResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	if envelope.Code != http.StatusOK {
		// The provider reports unknown locations as a 404 envelope with the
		// reason in data as a bare string.
		if envelope.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s, %s", ErrLocationNotFound, city, country)
		}
		return nil, fmt.Errorf("%w: provider code %d", ErrUpstream, envelope.Code)
	}

	var data aladhanData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decoding timings: %v", ErrUpstream, err)
	}

	schedule := &Schedule{
		Fajr:       data.Timings.Fajr,
		Sunrise:    data.Timings.Sunrise,
		Dhuhr:      data.Timings.Dhuhr,
		Asr:        data.Timings.Asr,
		Sunset:     data.Timings.Sunset,
		Maghrib:    data.Timings.Maghrib,
		Isha:       data.Timings.Isha,
		Imsak:      data.Timings.Imsak,
		Midnight:   data.Timings.Midnight,
		FirstThird: data.Timings.Firstthird,
		LastThird:  data.Timings.Lastthird,
		Date:       gregorianToISO(data.Date.Gregorian.Date),
		Timezone:   data.Meta.Timezone,
		HijriDate:  formatHijri(data.Date),
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return schedule, nil
}

// gregorianToISO converts the provider's DD-MM-YYYY into YYYY-MM-DD.
func gregorianToISO(date string) string {
	t, err := time.Parse("02-01-2006", date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}

func formatHijri(d aladhanDate) string {
	h := d.Hijri
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	abbr := h.Designation.Abbreviated
	if abbr == "" {
		abbr = "AH"
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " " + abbr
}
