package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/models"
)

// RemoteStore talks to the booking API over HTTP. The console client uses it
// as its persistence boundary.
type RemoteStore struct {
	baseURL string
	client  *http.Client
}

var _ reservationRepo.ReservationRepository = (*RemoteStore)(nil)

func NewRemoteStore(baseURL string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Error    string `json:"error"`
	Conflict bool   `json:"conflict"`
}

func (s *RemoteStore) CreateBooking(ctx context.Context, draft models.BookingDraft) (*models.ConfirmedBooking, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var booking models.ConfirmedBooking
	if err := s.do(req, http.StatusCreated, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *RemoteStore) QueryAvailability(ctx context.Context, date, openTime, closeTime string, durationMinutes int) (*models.SlotGrid, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("open", openTime)
	q.Set("close", closeTime)
	q.Set("duration", strconv.Itoa(durationMinutes))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/availability?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var grid models.SlotGrid
	if err := s.do(req, http.StatusOK, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (s *RemoteStore) GetByID(ctx context.Context, id string) (*models.ConfirmedBooking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var booking models.ConfirmedBooking
	if err := s.do(req, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *RemoteStore) ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/bookings?date="+url.QueryEscape(date), nil)
	if err != nil {
		return nil, err
	}
	var bookings []models.ConfirmedBooking
	if err := s.do(req, http.StatusOK, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// do maps the API's status codes back onto the repository errors.
func (s *RemoteStore) do(req *http.Request, want int, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return &reservationRepo.StoreError{Message: "booking service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == want {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	switch {
	case resp.StatusCode == http.StatusConflict && apiErr.Conflict:
		return reservationRepo.ErrSlotConflict
	case resp.StatusCode == http.StatusConflict:
		return reservationRepo.ErrDuplicateBooking
	case resp.StatusCode == http.StatusNotFound:
		return reservationRepo.ErrNotFound
	case apiErr.Error != "":
		return reservationRepo.NewStoreError(apiErr.Error)
	}
	return fmt.Errorf("booking service returned %s", resp.Status)
}
