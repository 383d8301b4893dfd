package services

import (
	"context"
	"log"
	"time"

	"github.com/Aadarsh-Mane/common-backend/models"
)

// Notifier delivers discharge notifications to the attending doctor.
// The implementation is chosen in main and injected here.
type Notifier interface {
	NotifyDischarge(ctx context.Context, doctor models.DoctorRef, patientName string, entry *models.HistoryEntry) error
}

// LogNotifier writes notifications to the process log. Stands in until
// a real push channel is wired up.
type LogNotifier struct{}

func (LogNotifier) NotifyDischarge(_ context.Context, doctor models.DoctorRef, patientName string, entry *models.HistoryEntry) error {
	log.Printf("Notify doctor %s: patient %s discharged from admission %s", doctor.Name, patientName, entry.AdmissionID.Hex())
	return nil
}

var notifier Notifier = LogNotifier{}

// SetNotifier installs the notification channel. Call before serving.
func SetNotifier(n Notifier) {
	if n != nil {
		notifier = n
	}
}

// dispatchDischargeNotification fires after the discharge transaction
// commits. Failures are logged and never affect the response.
func dispatchDischargeNotification(doctor models.DoctorRef, patientName string, entry *models.HistoryEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := notifier.NotifyDischarge(ctx, doctor, patientName, entry); err != nil {
			log.Println("Discharge notification failed:", err)
		}
	}()
}
