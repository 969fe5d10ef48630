package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nimbus-Analytics/stratus/internal/http/api"
	"github.com/Nimbus-Analytics/stratus/internal/http/api/admin/packets"
	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// ScheduleModule exposes the normalization core directly: POST a raw
// platform record and get back the normalized schedule, its description,
// and any strict-validation issues, without touching the mirror.
func ScheduleModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/schedules/preview", previewSchedule)
	})
}

func previewSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PreviewScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	s, parseIssues := schedule.Parse(request)
	response := packets.NewScheduleResponse(s)

	// parse and strict validation overlap on range problems; report each once
	seen := make(map[string]bool)
	for _, issue := range append(parseIssues, schedule.Validate(s)...) {
		if msg := issue.String(); !seen[msg] {
			seen[msg] = true
			response.Issues = append(response.Issues, msg)
		}
	}
	return response, nil
}
