package worker

import (
	"github.com/taskboard/taskboard/internal/service"
)

// StartActivityWorker subscribes the activity service to domain events.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
