package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/models"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TaskIDProperty is the private extended property linking an event to a task.
const TaskIDProperty = "dayplan_id"

// ErrPlanNotLocked is returned when publishing an editable plan.
var ErrPlanNotLocked = errors.New("plan must be locked before publishing")

// Google event color ids for the three tiers.
var tierColors = map[models.Tier]string{
	models.TierUrgent:  "11",
	models.TierWarning: "5",
	models.TierSafe:    "10",
}

// Publisher writes plan tasks to one calendar.
type Publisher struct {
	srv        *calendar.Service
	calendarID string
}

// PublishSummary counts what a publish run did.
type PublishSummary struct {
	Date      string `json:"date"`
	Inserted  int    `json:"inserted"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
}

// NewPublisher creates a calendar service on httpClient and resolves name to a
// calendar id. An empty name or "primary" uses the primary calendar.
func NewPublisher(ctx context.Context, httpClient *http.Client, name string, opts ...option.ClientOption) (*Publisher, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	p := &Publisher{srv: srv, calendarID: "primary"}
	if name == "" || name == "primary" {
		return p, nil
	}

	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name || item.Id == name {
			p.calendarID = item.Id
			return p, nil
		}
	}
	return nil, fmt.Errorf("calendar %q not found", name)
}

// CalendarID is the resolved target calendar.
func (p *Publisher) CalendarID() string {
	return p.calendarID
}

// Publish writes every task of a locked plan as an all-day event on the plan day.
func (p *Publisher) Publish(ctx context.Context, snap app.Snapshot) (PublishSummary, error) {
	sum := PublishSummary{Date: snap.Today}
	if !snap.Locked {
		return sum, ErrPlanNotLocked
	}
	for _, t := range snap.Plan {
		ev, err := EventFor(t, snap.Today)
		if err != nil {
			return sum, err
		}
		existing, err := p.find(ctx, t.ID)
		if err != nil {
			return sum, err
		}
		switch {
		case existing == nil:
			if _, err := p.srv.Events.Insert(p.calendarID, ev).Context(ctx).Do(); err != nil {
				return sum, fmt.Errorf("unable to create event for %s: %w", t.ID, err)
			}
			sum.Inserted++
		case needsUpdate(existing, ev):
			if _, err := p.srv.Events.Patch(p.calendarID, existing.Id, ev).Context(ctx).Do(); err != nil {
				return sum, fmt.Errorf("unable to update event for %s: %w", t.ID, err)
			}
			sum.Updated++
		default:
			sum.Unchanged++
		}
	}
	slog.Debug("published plan", "calendar", p.calendarID, "date", sum.Date,
		"inserted", sum.Inserted, "updated", sum.Updated, "unchanged", sum.Unchanged)
	return sum, nil
}

func (p *Publisher) find(ctx context.Context, taskID string) (*calendar.Event, error) {
	events, err := p.srv.Events.List(p.calendarID).
		PrivateExtendedProperty(TaskIDProperty + "=" + taskID).
		ShowDeleted(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to look up event for %s: %w", taskID, err)
	}
	if len(events.Items) == 0 {
		return nil, nil
	}
	return events.Items[0], nil
}

// EventFor converts a planned task to an all-day event on day.
func EventFor(t app.TaskView, day string) (*calendar.Event, error) {
	start, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return nil, fmt.Errorf("invalid plan day %q: %w", day, err)
	}
	return &calendar.Event{
		Summary:     t.Title,
		Description: describe(t),
		ColorId:     tierColors[t.Tier],
		Start:       &calendar.EventDateTime{Date: day},
		End:         &calendar.EventDateTime{Date: start.AddDate(0, 0, 1).Format(models.DateLayout)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: t.ID},
		},
	}, nil
}

func describe(t app.TaskView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Deadline: %s (%s)\n", t.Deadline, t.TierLabel)
	if t.Category != "" {
		fmt.Fprintf(&b, "Categorie: %s\n", t.Category)
	}
	fmt.Fprintf(&b, "Type: %s, duur: %s, voortgang: %d%%\n", t.Type, t.Duration, t.Progress)
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(t.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func needsUpdate(existing, want *calendar.Event) bool {
	if existing.Summary != want.Summary || existing.Description != want.Description {
		return true
	}
	if existing.ColorId != want.ColorId {
		return true
	}
	if existing.Start == nil || existing.End == nil {
		return true
	}
	return existing.Start.Date != want.Start.Date || existing.End.Date != want.End.Date
}
