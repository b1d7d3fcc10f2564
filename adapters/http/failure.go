package http

import (
	"errors"
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// FailureView is the informational screen shown when a page load fails.
type FailureView struct {
	Title          string
	Summary        string
	Missing        string
	Steps          []string
	TechnicalError string
}

var authoringSteps = []string{
	"Open your Sanity Studio.",
	`Create a document of type "aboutMe".`,
	"Ensure it has fullName and role filled in.",
	"Click Publish.",
}

func NewFailureView(err error) FailureView {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return FailureView{
			Title:          "Something went wrong",
			Summary:        "The portfolio could not be loaded.",
			TechnicalError: err.Error(),
		}
	}

	switch {
	case errors.Is(err, apperror.ErrMissingProfileData):
		v := FailureView{
			Title:   "Connection Successful, but...",
			Missing: appErr.Details,
			Steps:   authoringSteps,
		}
		if appErr.Details == portfolio.MissingAllData {
			v.Summary = "We connected to Sanity, but nothing was returned: the project data is missing or not published."
		} else {
			v.Summary = fmt.Sprintf("We connected to Sanity, but the %s project data is missing or not published.", appErr.Details)
		}
		return v
	case errors.Is(err, apperror.ErrConfigurationInvalid):
		return FailureView{
			Title:   "Content source is not configured",
			Summary: "The Sanity project id is missing or invalid.",
			Steps: []string{
				"Set CONTENT_PROJECT_ID (or VITE_SANITY_PROJECT_ID) in your .env file.",
				"Use only lowercase letters, digits and dashes.",
				"Restart the server.",
			},
			TechnicalError: appErr.Details,
		}
	case errors.Is(err, apperror.ErrFetchFailed):
		return FailureView{
			Title:   "Could not load portfolio content",
			Summary: "The request to Sanity failed.",
			Steps: []string{
				"Check that the dataset exists and is public, or configure a read token.",
				"Check the configured API version.",
			},
			TechnicalError: appErr.Cause(),
		}
	}
	return FailureView{
		Title:          "Something went wrong",
		Summary:        appErr.Message,
		TechnicalError: appErr.Cause(),
	}
}
