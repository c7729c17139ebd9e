package hostel

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hostel/internal/activity"
	"hostel/internal/logger"
	"hostel/internal/metrics"
	"hostel/internal/queue"
	"hostel/internal/recordstore"
)

// MessageDateLayout renders warden message timestamps, e.g. "10/17/2026, 3:04:05 PM".
const MessageDateLayout = "1/2/2006, 3:04:05 PM"

const publishTimeout = 2 * time.Second

// Publisher receives activity messages after successful writes.
type Publisher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// Service coordinates the four hostel collections.
type Service struct {
	cols    *recordstore.Collections
	pub     Publisher
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
	now     func() time.Time
}

// NewService creates a service over cols. pub and m may be nil.
func NewService(cols *recordstore.Collections, pub Publisher, m *metrics.Metrics, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{cols: cols, pub: pub, metrics: m, log: log, now: time.Now}
}

// WithClock replaces the time source used for message timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SubmitAttendance stores the submitted fields as-is.
func (s *Service) SubmitAttendance(ctx context.Context, fields recordstore.Record) (recordstore.Record, error) {
	return s.append(ctx, s.cols.Attendance, fields)
}

// ListAttendance returns every attendance record.
func (s *Service) ListAttendance() ([]recordstore.Record, error) {
	return s.list(s.cols.Attendance)
}

// SubmitLeave stores the submitted leave request as-is.
func (s *Service) SubmitLeave(ctx context.Context, fields recordstore.Record) (recordstore.Record, error) {
	return s.append(ctx, s.cols.Leave, fields)
}

// ListLeave returns every leave request.
func (s *Service) ListLeave() ([]recordstore.Record, error) {
	return s.list(s.cols.Leave)
}

// SubmitRoom reshapes the form into a room allotment and stores it.
func (s *Service) SubmitRoom(ctx context.Context, fields recordstore.Record) (recordstore.Record, error) {
	return s.append(ctx, s.cols.Rooms, NewRoomAllotment(fields))
}

// ListRooms returns every room allotment.
func (s *Service) ListRooms() ([]recordstore.Record, error) {
	return s.list(s.cols.Rooms)
}

// DeleteRoom removes the room at position index.
func (s *Service) DeleteRoom(ctx context.Context, index int) (recordstore.Record, error) {
	removed, err := s.cols.Rooms.DeleteAt(index)
	if err != nil {
		s.countError(s.cols.Rooms, err)
		return nil, err
	}
	s.changed(ctx, s.cols.Rooms, activity.ActionDelete, index)
	return removed, nil
}

// SendWardenMessage stores a message stamped with the current time.
// A missing title or message is stored as "".
func (s *Service) SendWardenMessage(ctx context.Context, fields recordstore.Record) (recordstore.Record, error) {
	msg := recordstore.Record{
		"title":   valueOr(fields, "title", ""),
		"message": valueOr(fields, "message", ""),
		"date":    s.now().Format(MessageDateLayout),
	}
	return s.append(ctx, s.cols.WardenMessages, msg)
}

// ListWardenMessages returns every warden message.
func (s *Service) ListWardenMessages() ([]recordstore.Record, error) {
	return s.list(s.cols.WardenMessages)
}

func (s *Service) list(store *recordstore.Store) ([]recordstore.Record, error) {
	recs, err := store.ListAll()
	if err != nil {
		s.countError(store, err)
		return nil, err
	}
	if recs == nil {
		recs = []recordstore.Record{}
	}
	return recs, nil
}

func (s *Service) append(ctx context.Context, store *recordstore.Store, rec recordstore.Record) (recordstore.Record, error) {
	if rec == nil {
		rec = recordstore.Record{}
	}
	stored, pos, err := store.AppendAt(rec)
	if err != nil {
		s.countError(store, err)
		return nil, err
	}
	s.changed(ctx, store, activity.ActionAppend, pos)
	return stored, nil
}

func (s *Service) changed(ctx context.Context, store *recordstore.Store, action string, pos int) {
	if s.metrics != nil {
		s.metrics.RecordWrites.WithLabelValues(store.Name(), action).Inc()
	}
	if s.pub == nil {
		return
	}
	msg, err := activity.NewEvent(store.Name(), action, pos).Message()
	if err != nil {
		s.log.Warnw("encode activity failed", "collection", store.Name(), "error", err)
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.pub.Publish(pubCtx, msg); err != nil {
		s.log.Warnw("publish activity failed", "collection", store.Name(), "error", err)
	}
}

func (s *Service) countError(store *recordstore.Store, err error) {
	kind := "io"
	switch {
	case errors.Is(err, recordstore.ErrInvalidIndex):
		kind = "invalid_index"
	case errors.Is(err, recordstore.ErrCorruptStore):
		kind = "corrupt"
		s.log.Errorw("collection file is corrupt", "collection", store.Name(), "error", err)
	default:
		s.log.Errorw("collection operation failed", "collection", store.Name(), "error", err)
	}
	if s.metrics != nil {
		s.metrics.StoreErrors.WithLabelValues(store.Name(), kind).Inc()
	}
}
