package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brickengine/publisher/cmd/publisher/models"
)

const notifyTimeout = 15 * time.Second

// dispatch sends one email without blocking the calling operation.
// Failures are logged and never surface to the caller.
func (s *SubmissionService) dispatch(to, subject, html string) {
	if to == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.mail.Send(ctx, to, subject, html); err != nil {
			s.log.Warn("notification failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

func (s *SubmissionService) notifyAdminSubmission(req *models.GameRequest) {
	devEmail := "not provided"
	if req.DeveloperEmail != nil {
		devEmail = *req.DeveloperEmail
	}

	html := fmt.Sprintf(`
		<h2>New game submission</h2>
		<p><strong>Game:</strong> %s (ID: %s)</p>
		<p><strong>Version:</strong> %s</p>
		<p><strong>Developer email:</strong> %s</p>
		<p><strong>Request ID:</strong> %s</p>
		<p>Please review the submission to approve or reject publication.</p>
	`, req.GameName, req.GameID, req.Version, devEmail, req.ID)

	s.dispatch(s.cfg.Email.AdminEmail, fmt.Sprintf("New game submission: %s", req.GameName), html)
}

func (s *SubmissionService) notifyDeveloperApproved(req *models.GameRequest) {
	if req.DeveloperEmail == nil {
		return
	}

	html := fmt.Sprintf(`
		<h2>Your game was approved!</h2>
		<p>The publication request for <strong>%s</strong> (version %s) was approved.</p>
		<p>It is now available in the public catalog.</p>
	`, req.GameName, req.Version)

	s.dispatch(*req.DeveloperEmail, fmt.Sprintf("Game approved: %s", req.GameName), html)
}

func (s *SubmissionService) notifyDeveloperRejected(req *models.GameRequest, reason string) {
	if req.DeveloperEmail == nil {
		return
	}

	html := fmt.Sprintf(`
		<h2>Your submission was rejected</h2>
		<p>The publication request for <strong>%s</strong> (version %s) could not be approved.</p>
		<h3>Reason:</h3>
		<blockquote>%s</blockquote>
		<p>Please address the notes above and submit a new request.</p>
	`, req.GameName, req.Version, reason)

	s.dispatch(*req.DeveloperEmail, fmt.Sprintf("Game rejected: %s", req.GameName), html)
}
