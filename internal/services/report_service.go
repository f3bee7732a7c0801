package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "log-owl.com/log-owl/internal/errors"
	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/pkg/interval"
	model "log-owl.com/log-owl/pkg/models"
	"log-owl.com/log-owl/pkg/timestamp"
)

// Span is a merged, closed interval in report output.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ReportRow struct {
	TaskID       int64  `json:"task_id"`
	TaskTitle    string `json:"task_title"`
	Intervals    []Span `json:"intervals"`
	TotalMinutes int64  `json:"total_minutes"`
}

type Report struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Rows         []ReportRow `json:"rows"`
	TotalMinutes int64       `json:"total_minutes"`
}

// ReportService sums tracked time per task over a window. Overlapping
// entries of one task are merged first so no minute is billed twice.
type ReportService struct {
	entries *repository.TimeEntryRepository
	tasks   *repository.TaskRepository
}

func NewReportService(entries *repository.TimeEntryRepository, tasks *repository.TaskRepository) *ReportService {
	return &ReportService{
		entries: entries,
		tasks:   tasks,
	}
}

func (s *ReportService) BuildReport(ctx context.Context, from, to string) (*Report, error) {
	fromTime, err := timestamp.Parse(from)
	if err != nil {
		return nil, apperrors.ErrInvalidTimestamp
	}
	toTime, err := timestamp.Parse(to)
	if err != nil {
		return nil, apperrors.ErrInvalidTimestamp
	}
	if !fromTime.Before(toTime) {
		return nil, apperrors.ErrInvalidRange
	}
	from, to = timestamp.Format(fromTime), timestamp.Format(toTime)

	entries, err := s.entries.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list time entries in range: %w", err)
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	titles := make(map[int64]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	byTask := make(map[int64][]interval.Interval)
	order := make([]int64, 0)
	for _, e := range entries {
		in, err := toInterval(e)
		if err != nil {
			return nil, err
		}
		if _, ok := byTask[e.TaskID]; !ok {
			order = append(order, e.TaskID)
		}
		byTask[e.TaskID] = append(byTask[e.TaskID], in)
	}

	report := &Report{From: from, To: to, Rows: make([]ReportRow, 0, len(order))}
	for _, taskID := range order {
		clipped := interval.ClipToRange(byTask[taskID], fromTime, toTime)
		merged := interval.Merge(clipped)

		spans := make([]Span, 0, len(merged))
		for _, m := range merged {
			spans = append(spans, Span{Start: timestamp.Format(m.Start), End: timestamp.Format(*m.End)})
		}

		title, ok := titles[taskID]
		if !ok {
			title = fmt.Sprintf("Task #%d", taskID)
		}

		row := ReportRow{
			TaskID:       taskID,
			TaskTitle:    title,
			Intervals:    spans,
			TotalMinutes: interval.TotalMinutes(clipped),
		}
		report.Rows = append(report.Rows, row)
		report.TotalMinutes += row.TotalMinutes
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return strings.ToLower(report.Rows[i].TaskTitle) < strings.ToLower(report.Rows[j].TaskTitle)
	})
	return report, nil
}

func toInterval(e model.TimeEntry) (interval.Interval, error) {
	start, err := timestamp.Parse(e.StartedAt)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("time entry %d: %w", e.ID, err)
	}
	if e.EndedAt == nil {
		return interval.Open(start), nil
	}
	end, err := timestamp.Parse(*e.EndedAt)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("time entry %d: %w", e.ID, err)
	}
	return interval.Closed(start, end), nil
}

// Minutes formats a minute count as "1h 05m".
func Minutes(total int64) string {
	d := time.Duration(total) * time.Minute
	return fmt.Sprintf("%dh %02dm", int64(d/time.Hour), int64(d%time.Hour/time.Minute))
}
