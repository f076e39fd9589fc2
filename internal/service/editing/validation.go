package editing

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"feedstudio/internal/config"
	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
	"feedstudio/internal/domain/services"
)

// validateSaveEdit checks a raw save payload and reports every field
// violation at once. A payload with only unrecognized fields still fails
// here, because the required body field comes through as nil.
func validateSaveEdit(req *services.SaveEditRequest) error {
	fields := map[string]string{}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Body,
			validation.NotNil.Error("edited content is required"),
			validation.Length(0, config.MaxBodyLength),
		),
		validation.Field(&req.SessionID, validation.Length(0, config.MaxSessionIDLength)),
		validation.Field(&req.TimeSpentMS, validation.Min(int64(0)).Error("must be no less than 0")),
		validation.Field(&req.Changes, validation.Length(0, config.MaxChangesPerEdit)),
	)
	collectViolations(fields, "", err)

	for i := range req.Changes {
		ch := &req.Changes[i]
		err := validation.ValidateStruct(ch,
			validation.Field(&ch.Kind,
				validation.Required.Error("change type is required"),
				validation.In("insert", "delete", "modify").Error("unrecognized change type"),
			),
			validation.Field(&ch.Position,
				validation.NotNil.Error("position is required"),
				validation.Min(0),
			),
			validation.Field(&ch.Length,
				validation.NotNil.Error("length is required"),
				validation.Min(0),
			),
		)
		collectViolations(fields, fmt.Sprintf("changes.%d.", i), err)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// collectViolations flattens ozzo's per-field error map into the shared
// violation map, prefixing nested change entries with their index.
func collectViolations(fields map[string]string, prefix string, err error) {
	if err == nil {
		return
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for name, ferr := range verrs {
			fields[prefix+name] = ferr.Error()
		}
		return
	}
	fields[prefix+"request"] = err.Error()
}

// toChangeDescriptors converts validated change inputs into their
// persisted form. Must only be called after validateSaveEdit passed.
func toChangeDescriptors(inputs []services.ChangeInput) []models.ChangeDescriptor {
	if len(inputs) == 0 {
		return nil
	}
	changes := make([]models.ChangeDescriptor, len(inputs))
	for i, in := range inputs {
		changes[i] = models.ChangeDescriptor{
			Kind:      models.ChangeKind(in.Kind),
			Position:  *in.Position,
			Length:    *in.Length,
			Text:      in.Text,
			Timestamp: in.Timestamp,
		}
	}
	return changes
}
