// Package gateway talks to the shared company Google Calendar.
package gateway

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"hr-dashboard-api/core/config"
	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/modules/calendar/entity"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrNotConnected is returned by every operation when credentials are incomplete.
var ErrNotConnected = errors.NewAppError(errors.ErrCalendarNotConnected, "Google Calendar is not connected", nil)

type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []entity.Attendee
	// CreateMeet asks Google to attach a Meet conference.
	CreateMeet bool
}

type CreatedEvent struct {
	ID         string
	MeetingURL string
	HTMLLink   string
}

type Client struct {
	cfg        config.GoogleAPIConfig
	oauth      *oauth2.Config
	httpClient *http.Client
	holidays   HolidayMatcher
	loc        *time.Location
}

type Option func(*Client)

// WithHTTPClient sets the transport used for both the token exchange and API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithHolidayMatcher(m HolidayMatcher) Option {
	return func(c *Client) {
		if m != nil {
			c.holidays = m
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func NewClient(cfg config.GoogleAPIConfig, opts ...Option) *Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://oauth2.googleapis.com/token"
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = constants.DefaultCalendarID
	}

	c := &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{calendar.CalendarScope},
		},
		holidays: NewKeywordMatcher("holiday", "libur"),
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) IsConnected() bool {
	return c.cfg.IsConnected()
}

func (c *Client) CalendarID() string {
	return c.cfg.CalendarID
}

func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// GetAccessToken performs one refresh-token grant. Tokens are not cached and the
// exchange is not retried.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	if !c.IsConnected() {
		return "", ErrNotConnected
	}

	tok, err := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{
		RefreshToken: c.cfg.RefreshToken,
	}).Token()
	if err != nil {
		logger.Error("CalendarGateway:GetAccessToken:Error", "error", err)
		return "", errors.NewAppError(errors.ErrCalendarNotConnected, "failed to obtain Google access token", err)
	}
	if tok.AccessToken == "" {
		return "", errors.NewAppError(errors.ErrCalendarNotConnected, "empty Google access token", nil)
	}
	return tok.AccessToken, nil
}

func (c *Client) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	if !c.IsConnected() || accessToken == "" {
		return nil, ErrNotConnected
	}

	hc := oauth2.NewClient(c.withHTTPClient(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if c.cfg.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(c.cfg.APIEndpoint))
	}
	return calendar.NewService(ctx, opts...)
}

// ListEvents returns the single instances between timeMin and timeMax. Items whose
// start or end cannot be resolved are skipped.
func (c *Client) ListEvents(ctx context.Context, accessToken, calendarID string, timeMin, timeMax time.Time) ([]entity.CalendarEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Events.List(c.calendarOrDefault(calendarID)).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(constants.GoogleEventMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("CalendarGateway:ListEvents:Error", "calendar_id", calendarID, "error", err)
		return nil, errors.NewAppError(errors.ErrCalendarFetchFailed, "failed to list Google Calendar events", err)
	}

	events := make([]entity.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, err := c.toCalendarEvent(item)
		if err != nil {
			logger.Warn("CalendarGateway:ListEvents:SkipItem", "event_id", item.Id, "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, accessToken, calendarID string, in EventInput) (*CreatedEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	ev := c.toRemoteEvent(in)
	if in.CreateMeet {
		ev.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
	}

	call := svc.Events.Insert(c.calendarOrDefault(calendarID), ev).SendUpdates("all")
	if in.CreateMeet {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		logger.Error("CalendarGateway:CreateEvent:Error", "calendar_id", calendarID, "error", err)
		return nil, errors.NewAppError(errors.ErrCalendarCreateFailed, "failed to create Google Calendar event", err)
	}

	logger.Info("CalendarGateway:CreateEvent:Success", "event_id", created.Id)
	return &CreatedEvent{
		ID:         created.Id,
		MeetingURL: meetingURL(created),
		HTMLLink:   created.HtmlLink,
	}, nil
}

// UpdateEvent patches the populated fields of in onto the remote event.
func (c *Client) UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, in EventInput) error {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return err
	}

	_, err = svc.Events.Patch(c.calendarOrDefault(calendarID), eventID, c.toRemoteEvent(in)).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("CalendarGateway:UpdateEvent:Error", "event_id", eventID, "error", err)
		return errors.NewAppError(errors.ErrCalendarUpdateFailed, "failed to update Google Calendar event", err)
	}
	return nil
}

// DeleteEvent removes the remote event. An event that is already gone counts as deleted.
func (c *Client) DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(c.calendarOrDefault(calendarID), eventID).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if stderrors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
			return nil
		}
		return fmt.Errorf("delete google event %s: %w", eventID, err)
	}
	return nil
}

func (c *Client) calendarOrDefault(id string) string {
	if id == "" {
		return c.cfg.CalendarID
	}
	return id
}

func (c *Client) toRemoteEvent(in EventInput) *calendar.Event {
	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
	}
	if !in.Start.IsZero() {
		ev.Start = &calendar.EventDateTime{DateTime: in.Start.Format(time.RFC3339), TimeZone: in.TimeZone}
	}
	if !in.End.IsZero() {
		ev.End = &calendar.EventDateTime{DateTime: in.End.Format(time.RFC3339), TimeZone: in.TimeZone}
	}
	for _, a := range in.Attendees {
		if a.Email == "" {
			continue
		}
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
		})
	}
	return ev
}
