package amqp

import (
	"encoding/json"
	"time"

	"github.com/hongminglow/finance-tracker-be/internal/mail"
)

// EmailJob is the queued form of an outgoing email.
type EmailJob struct {
	Message   mail.Message `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewEmailJob wraps msg with the enqueue time.
func NewEmailJob(msg mail.Message) *EmailJob {
	return &EmailJob{Message: msg, Timestamp: time.Now().UTC()}
}

// ToJSON converts the job to JSON bytes.
func (j *EmailJob) ToJSON() ([]byte, error) {
	return json.Marshal(j)
}

// EmailJobFromJSON decodes a job and validates its message.
func EmailJobFromJSON(data []byte) (*EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	if err := job.Message.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}
