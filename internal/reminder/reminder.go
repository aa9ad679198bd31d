package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

// Scheduler mails citizens ahead of confirmed consultations. It runs
// every 10 minutes and picks up appointments starting 60-70 minutes out,
// so each appointment lands in exactly one pass.
type Scheduler struct {
	repo   scheduling.Repository
	ids    identity.Client
	notify *notification.Dispatcher
	cron   *cron.Cron
}

func NewScheduler(
	repo scheduling.Repository,
	ids identity.Client,
	notify *notification.Dispatcher,
) *Scheduler {
	return &Scheduler{
		repo:   repo,
		ids:    ids,
		notify: notify,
		cron:   cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/10 * * * *", s.sendReminders); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}
	s.cron.Start()
	log.Info().Msg("reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loc := timezone.Location("")
	now := timezone.Now()
	from := now.Add(60 * time.Minute)
	to := now.Add(70 * time.Minute)

	// The window may straddle midnight.
	dates := []time.Time{from}
	if to.Day() != from.Day() {
		dates = append(dates, to)
	}

	for _, date := range dates {
		apps, err := s.repo.ListConfirmedOnDate(ctx, date)
		if err != nil {
			log.Error().Err(err).Msg("failed to load appointments for reminders")
			continue
		}

		for i := range apps {
			startsAt := apps[i].StartsAt(loc)
			if startsAt.Before(from) || !startsAt.Before(to) {
				continue
			}
			s.remind(ctx, &apps[i])
		}
	}
}

func (s *Scheduler) remind(ctx context.Context, ap *models.Appointment) {
	citizen, err := s.ids.GetUser(ctx, ap.CitizenID)
	if err != nil {
		log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("failed to resolve citizen for reminder")
		return
	}

	end := ap.StartTime
	if occupied, err := scheduling.RangeFrom(ap.StartTime, ap.DurationMin); err == nil {
		end = scheduling.FormatClock(occupied.End)
	}

	s.notify.Dispatch(notification.Message{
		To:      citizen.Email,
		Subject: "Reminder: upcoming consultation",
		Body: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>This is a reminder for your consultation scheduled in about one hour.</p>
			<ul>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Time:</strong> %s-%s</li>
				<li><strong>Location:</strong> %s</li>
			</ul>
			<p>Please arrive on time. If you need to cancel, do so at least 2 hours in advance.</p>
		`,
			citizen.FullName,
			ap.Date.Format("2006-01-02"),
			ap.StartTime, end,
			ap.MeetingLocation,
		),
	})

	log.Info().Uint("appointment_id", ap.ID).Msg("reminder queued")
}
