package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/repository"
	"github.com/asistencia-escolar/asistencia-api/internal/tally"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type scopedRecordReader interface {
	ListScoped(ctx context.Context, filter models.RecordFilter) ([]models.ScopedRecord, error)
}

type sessionLister interface {
	List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
}

// RangeStats is the GET /stats payload: one summary plus the per-day
// breakdown of the range.
type RangeStats struct {
	Summary models.Tally        `json:"summary"`
	Daily   []models.DailyTally `json:"daily"`
}

// StatsService computes every read-side aggregate. All arithmetic lives in
// the tally package; this layer only partitions records, joins roster
// metadata and caches the results.
type StatsService struct {
	records  scopedRecordReader
	sessions sessionLister
	courses  courseReader
	students studentReader
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewStatsService constructs a stats service.
func NewStatsService(records scopedRecordReader, sessions sessionLister, courses courseReader, students studentReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{records: records, sessions: sessions, courses: courses, students: students, cache: cache, metrics: metrics, logger: logger}
}

// GetRangeStats returns the summary and daily tallies for a filter. The
// boolean reports whether the payload came from cache.
func (s *StatsService) GetRangeStats(ctx context.Context, claims *models.JWTClaims, filter models.RecordFilter) (*RangeStats, bool, error) {
	if err := s.checkAccess(ctx, claims, filter.CourseID); err != nil {
		return nil, false, err
	}
	cacheKey := makeStatsCacheKey("range", filter)
	var cached RangeStats
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get range stats cache: %w", err)
		} else if hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	records, sessions, err := s.load(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	summaryAcc := tally.NewAccumulator()
	dayAccs := map[string]*tally.Accumulator{}
	for _, rec := range normalizeAll(records) {
		summaryAcc.Add(rec)
		acc := dayAccs[rec.Date]
		if acc == nil {
			acc = tally.NewAccumulator()
			dayAccs[rec.Date] = acc
		}
		acc.Add(rec)
	}

	sessionsPerDay := map[string]int{}
	for _, session := range sessions {
		sessionsPerDay[session.Date]++
	}

	summary := summaryAcc.Result()
	summary.Sessions = len(sessions)

	dates := make([]string, 0, len(dayAccs))
	for date := range dayAccs {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	daily := make([]models.DailyTally, 0, len(dates))
	for _, date := range dates {
		day := dayAccs[date].Result()
		day.Sessions = sessionsPerDay[date]
		daily = append(daily, models.DailyTally{Date: date, Tally: day})
	}

	stats := &RangeStats{Summary: summary, Daily: daily}
	if s.metrics != nil {
		s.metrics.ObserveTally("range", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, 0); err != nil {
			s.logger.Warn("cache range stats", zap.Error(err))
		}
	}
	return stats, false, nil
}

// GetStudentStats returns per-student tallies for a course, sorted the way
// preceptors triage: most absence equivalents first, then most lates, then
// name.
func (s *StatsService) GetStudentStats(ctx context.Context, claims *models.JWTClaims, filter models.RecordFilter) ([]models.StudentTally, bool, error) {
	if filter.CourseID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "course_id is required")
	}
	if err := s.checkAccess(ctx, claims, filter.CourseID); err != nil {
		return nil, false, err
	}
	cacheKey := makeStatsCacheKey("students", filter)
	var cached []models.StudentTally
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get student stats cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	roster, err := s.students.ListActive(ctx, filter.CourseID)
	if err != nil {
		return nil, false, err
	}
	records, _, err := s.load(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	perStudent := map[string]*tally.Accumulator{}
	sessionsPerStudent := map[string]map[string]bool{}
	for _, rec := range normalizeAll(records) {
		acc := perStudent[rec.StudentID]
		if acc == nil {
			acc = tally.NewAccumulator()
			perStudent[rec.StudentID] = acc
			sessionsPerStudent[rec.StudentID] = map[string]bool{}
		}
		acc.Add(rec)
	}
	for _, rec := range records {
		if set := sessionsPerStudent[rec.StudentID]; set != nil {
			set[rec.SessionID] = true
		}
	}

	out := make([]models.StudentTally, 0, len(roster))
	for _, student := range roster {
		item := models.StudentTally{
			StudentID:     student.StudentID,
			CourseID:      student.CourseID,
			StudentName:   student.DisplayName(),
			GuardianPhone: student.GuardianPhone,
		}
		if acc := perStudent[student.StudentID]; acc != nil {
			item.Tally = acc.Result()
			item.Sessions = len(sessionsPerStudent[student.StudentID])
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AbsenceEquiv != out[j].AbsenceEquiv {
			return out[i].AbsenceEquiv > out[j].AbsenceEquiv
		}
		if out[i].Late != out[j].Late {
			return out[i].Late > out[j].Late
		}
		return out[i].StudentName < out[j].StudentName
	})

	if s.metrics != nil {
		s.metrics.ObserveTally("students", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, out, 0); err != nil {
			s.logger.Warn("cache student stats", zap.Error(err))
		}
	}
	return out, false, nil
}

// GetCourseSummary returns one tally per active course over the range.
// Only roles that cover any course may call it.
func (s *StatsService) GetCourseSummary(ctx context.Context, claims *models.JWTClaims, filter models.RecordFilter) ([]models.CourseTally, bool, error) {
	if claims == nil || !claims.CanCoverAnyCourse() {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "school-wide stats require a coverage role")
	}
	filter.CourseID = ""
	filter.StudentID = ""
	cacheKey := makeStatsCacheKey("courses", filter)
	var cached []models.CourseTally
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get course summary cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, false, err
	}
	records, sessions, err := s.load(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	perCourse := map[string]*tally.Accumulator{}
	for _, rec := range normalizeAll(records) {
		acc := perCourse[rec.CourseID]
		if acc == nil {
			acc = tally.NewAccumulator()
			perCourse[rec.CourseID] = acc
		}
		acc.Add(rec)
	}
	sessionsPerCourse := map[string]int{}
	for _, session := range sessions {
		sessionsPerCourse[session.CourseID]++
	}

	out := make([]models.CourseTally, 0, len(courses))
	for _, course := range courses {
		item := models.CourseTally{CourseID: course.CourseID, Name: course.Name, Shift: course.Shift}
		if acc := perCourse[course.CourseID]; acc != nil {
			item.Tally = acc.Result()
		}
		item.Sessions = sessionsPerCourse[course.CourseID]
		out = append(out, item)
	}

	if s.metrics != nil {
		s.metrics.ObserveTally("courses", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, out, 0); err != nil {
			s.logger.Warn("cache course summary", zap.Error(err))
		}
	}
	return out, false, nil
}

// GetStudentTimeline returns a student's normalized history, newest first,
// each entry annotated with its weight and absence contribution.
func (s *StatsService) GetStudentTimeline(ctx context.Context, claims *models.JWTClaims, studentID string, filter models.RecordFilter) ([]models.TimelineEntry, error) {
	filter.StudentID = studentID
	if err := s.checkAccess(ctx, claims, filter.CourseID); err != nil {
		return nil, err
	}
	records, err := s.records.ListScoped(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TimelineEntry, 0, len(records))
	for i, rec := range normalizeAll(records) {
		if rec.Status == "" {
			continue
		}
		entries = append(entries, models.TimelineEntry{
			Date:          rec.Date,
			Context:       rec.Context,
			Status:        rec.Status,
			Note:          rec.Note,
			Justified:     rec.Justified,
			SessionID:     records[i].SessionID,
			SessionWeight: tally.Decimal(tally.SessionWeight(rec.Context)),
			AbsenceEquiv:  tally.Decimal(tally.AbsenceEquiv(rec.Status, rec.Context)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

func (s *StatsService) checkAccess(ctx context.Context, claims *models.JWTClaims, courseID string) error {
	if courseID != "" {
		return requireCourseAccess(ctx, s.courses, claims, courseID)
	}
	if claims == nil || !claims.CanCoverAnyCourse() {
		return appErrors.Clone(appErrors.ErrForbidden, "course_id is required for this role")
	}
	return nil
}

func (s *StatsService) load(ctx context.Context, filter models.RecordFilter) ([]models.ScopedRecord, []models.Session, error) {
	records, err := s.records.ListScoped(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := s.sessions.List(ctx, repository.SessionFilter{
		CourseID: filter.CourseID,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Context:  filter.Context,
	})
	if err != nil {
		return nil, nil, err
	}
	return records, sessions, nil
}

// normalizeAll runs every scoped row through the normalizer, preserving
// order so callers can index back into the source slice.
func normalizeAll(records []models.ScopedRecord) []tally.Record {
	out := make([]tally.Record, 0, len(records))
	for _, row := range records {
		raw := tally.RawRecord{
			StudentID: row.StudentID,
			CourseID:  row.CourseID,
			Date:      row.Date,
			Context:   row.Context,
		}
		if row.Status != nil {
			raw.Status = *row.Status
		}
		if row.Note != nil {
			raw.Note = *row.Note
		}
		out = append(out, tally.Normalize(raw))
	}
	return out
}

// makeStatsCacheKey keeps every filter field in a fixed position, with "-"
// for unset fields, so filters that differ only in which field is set never
// share a key.
func makeStatsCacheKey(scope string, filter models.RecordFilter) string {
	parts := []string{scope, filter.CourseID, filter.StudentID, filter.DateFrom, filter.DateTo, string(filter.Context)}
	var builder strings.Builder
	builder.WriteString("stats")
	for _, part := range parts {
		builder.WriteByte(':')
		if part == "" {
			builder.WriteByte('-')
			continue
		}
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}
