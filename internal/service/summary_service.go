package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// SummaryService builds human-readable digests for daily notifications.
type SummaryService struct {
	store      repository.DataStore
	completion *CompletionService
}

func NewSummaryService(store repository.DataStore, completion *CompletionService) *SummaryService {
	return &SummaryService{store: store, completion: completion}
}

// DailySummary renders the visible trackers for the given date grouped by
// category, with the completion mark for that day and the running total of
// completed days per tracker.
func (s *SummaryService) DailySummary(ctx context.Context, date time.Time) (string, error) {
	trackers, err := s.store.ListTrackers(ctx)
	if err != nil {
		return "", err
	}
	records, err := s.store.FetchAllRecords(ctx)
	if err != nil {
		return "", err
	}

	grouped := make(map[string][]model.Tracker)
	for _, tracker := range trackers {
		if !tracker.VisibleOn(date) {
			continue
		}
		title := tracker.CategoryTitle()
		grouped[title] = append(grouped[title], tracker)
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Трекеры на день</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s (%s)\n\n", date.Format("02.01.2006"), model.WeekDayFromDate(date).FullName()))

	if len(grouped) == 0 {
		builder.WriteString("— на этот день трекеров нет\n")
		return strings.TrimSpace(builder.String()), nil
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		rows := grouped[title]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

		builder.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(title)))
		for _, tracker := range rows {
			builder.WriteString(formatTracker(tracker, date, records))
		}
		builder.WriteByte('\n')
	}

	return strings.TrimSpace(builder.String()), nil
}

// Statistics holds the all-time aggregate numbers shown by the statistics
// view.
type Statistics struct {
	Trackers      int
	CompletedDays int
	BestDay       int
}

// Statistics aggregates the tracker count, the total of completed days and
// the highest number of completions ever recorded on a single day.
func (s *SummaryService) Statistics(ctx context.Context) (Statistics, error) {
	trackers, err := s.store.ListTrackers(ctx)
	if err != nil {
		return Statistics{}, err
	}
	records, err := s.store.FetchAllRecords(ctx)
	if err != nil {
		return Statistics{}, err
	}

	perDay := make(map[string]int)
	for _, record := range records {
		perDay[record.Day.Format("2006-01-02")]++
	}
	best := 0
	for _, n := range perDay {
		if n > best {
			best = n
		}
	}

	return Statistics{
		Trackers:      len(trackers),
		CompletedDays: len(records),
		BestDay:       best,
	}, nil
}

func formatTracker(tracker model.Tracker, date time.Time, records []model.CompletionRecord) string {
	var sb strings.Builder

	mark := "⬜"
	total := 0
	for _, record := range records {
		if record.TrackerID != tracker.ID {
			continue
		}
		total++
		if record.IsOn(date) {
			mark = "✅"
		}
	}

	emoji := strings.TrimSpace(tracker.Emoji)
	if emoji == "" {
		emoji = "🟢"
	}
	sb.WriteString(fmt.Sprintf("%s %s %s · %s\n", mark, emoji, html.EscapeString(strings.TrimSpace(tracker.Name)), formatDays(total)))

	if text := tracker.Schedule.DisplayText(); text != "" {
		sb.WriteString(fmt.Sprintf("   📆 %s\n", text))
	}

	return sb.String()
}

// formatDays renders the streak counter with the right Russian plural.
func formatDays(count int) string {
	rem100 := count % 100
	rem10 := count % 10
	switch {
	case rem100 >= 11 && rem100 <= 14:
		return fmt.Sprintf("%d дней", count)
	case rem10 == 1:
		return fmt.Sprintf("%d день", count)
	case rem10 >= 2 && rem10 <= 4:
		return fmt.Sprintf("%d дня", count)
	default:
		return fmt.Sprintf("%d дней", count)
	}
}
