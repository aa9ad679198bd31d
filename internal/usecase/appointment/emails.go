package appointment

import (
	"fmt"

	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
)

func apptWhen(ap *models.Appointment) string {
	end := ""
	if occupied, err := scheduling.RangeFrom(ap.StartTime, ap.DurationMin); err == nil {
		end = scheduling.FormatClock(occupied.End)
	}
	return fmt.Sprintf("%s %s-%s", ap.Date.Format("2006-01-02"), ap.StartTime, end)
}

func bookingRequestedMail(to, citizenName string, ap *models.Appointment) notification.Message {
	return notification.Message{
		To:      to,
		Subject: "New consultation request",
		Body: fmt.Sprintf(`
			<p>%s has requested a consultation on %s.</p>
			<p>Please confirm or decline the request in your schedule.</p>
		`, citizenName, apptWhen(ap)),
	}
}

func confirmedMail(to string, ap *models.Appointment) notification.Message {
	return notification.Message{
		To:      to,
		Subject: "Your consultation is confirmed",
		Body: fmt.Sprintf(`
			<p>Your consultation on %s has been confirmed by the lawyer.</p>
			<p><strong>Location:</strong> %s</p>
		`, apptWhen(ap), ap.MeetingLocation),
	}
}

func rejectedMail(to string, ap *models.Appointment) notification.Message {
	return notification.Message{
		To:      to,
		Subject: "Your consultation request was declined",
		Body: fmt.Sprintf(`
			<p>Your consultation request for %s was declined.</p>
			<p><strong>Reason:</strong> %s</p>
		`, apptWhen(ap), ap.RejectionReason),
	}
}

func cancelledMail(to string, ap *models.Appointment) notification.Message {
	return notification.Message{
		To:      to,
		Subject: "Consultation cancelled",
		Body: fmt.Sprintf(`
			<p>The consultation on %s has been cancelled.</p>
			<p><strong>Reason:</strong> %s</p>
		`, apptWhen(ap), ap.CancellationReason),
	}
}
