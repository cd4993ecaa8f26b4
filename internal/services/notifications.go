package services

import (
	"errors"

	"alfredoptarigan/resumesync/internal/models"
)

const (
	TitleResumeUploaded    = "Resume Uploaded"
	TitleAnalysisComplete  = "Analysis Complete!"
	TitleAnalysisFailed    = "Analysis Failed"
	TitleMissingResume     = "Missing Resume Text"
	TitleMissingJD         = "Missing Job Description"
	TitleInvalidFileType   = "Invalid File Type"
	TitleExtractionFailed  = "PDF Extraction Failed"
	TitleNoTextExtracted   = "Could not extract text"
	TitleInvalidInput      = "Invalid Input"
	TitleAnalysisInFlight  = "Analysis In Progress"
	TitleProcessingError   = "Processing Error"
	defaultFailureMessage  = "An error occurred during analysis."
	defaultUploadFailure   = "Failed to process the file. Please try again."
	defaultInFlightMessage = "Please wait for the current analysis to finish."
)

// UploadedNotification describes a successful ingestion.
func UploadedNotification(doc *models.Document) models.Notification {
	description := "Text extracted successfully!"
	switch {
	case doc.Warning != "":
		description = doc.Warning
	case doc.MediaType == models.MediaTypePDF:
		description = "PDF text extracted successfully!"
	}

	return models.Notification{
		Title:       TitleResumeUploaded,
		Description: description,
		Variant:     models.VariantDefault,
	}
}

func AnalysisCompleteNotification() models.Notification {
	return models.Notification{
		Title:       TitleAnalysisComplete,
		Description: "Your resume has been analyzed successfully.",
		Variant:     models.VariantDefault,
	}
}

// NotificationFor maps an ingestion or analysis error to the message shown to the user.
func NotificationFor(err error) models.Notification {
	destructive := func(title, description string) models.Notification {
		return models.Notification{Title: title, Description: description, Variant: models.VariantDestructive}
	}

	var (
		missing     *MissingInputError
		unsupported *UnsupportedTypeError
		extraction  *ExtractionFailedError
		invalid     *InvalidInputError
	)

	switch {
	case errors.As(err, &missing):
		if missing.Field == FieldJobDescription {
			return destructive(TitleMissingJD, "Please provide at least one job description.")
		}
		return destructive(TitleMissingResume, "Please paste resume text or ensure PDF text extraction succeeded.")
	case errors.As(err, &unsupported):
		return destructive(TitleInvalidFileType, "Please upload a PDF, DOCX, or TXT file.")
	case errors.As(err, &extraction):
		if extraction.Reason == ExtractionReasonEmpty {
			return destructive(TitleNoTextExtracted, "This PDF may be scanned or image-based. Please paste text manually.")
		}
		return destructive(TitleExtractionFailed, "Please paste your resume text or upload a TXT/DOCX.")
	case errors.As(err, &invalid):
		return destructive(TitleInvalidInput, invalid.Message)
	case errors.Is(err, ErrAnalysisInProgress):
		return destructive(TitleAnalysisInFlight, defaultInFlightMessage)
	case err == nil:
		return destructive(TitleAnalysisFailed, defaultFailureMessage)
	default:
		return destructive(TitleAnalysisFailed, err.Error())
	}
}

// UploadFailedNotification is used for upload errors outside the ingestion taxonomy.
func UploadFailedNotification() models.Notification {
	return models.Notification{
		Title:       TitleProcessingError,
		Description: defaultUploadFailure,
		Variant:     models.VariantDestructive,
	}
}
