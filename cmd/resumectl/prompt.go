package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/generation"
	"resume-tailor/internal/profiles"
	"resume-tailor/resume/model"
)

type promptOptions struct {
	achievements int
}

func newPromptCmd() *cobra.Command {
	opts := &promptOptions{}
	cmd := &cobra.Command{
		Use:   "prompt <profile.json> <job-description>",
		Short: "Print the generation prompt for a profile and a job description",
		Long: `The profile file uses the GET /api/v1/profile response shape. The job description
may be a .txt, .md, .pdf or .docx file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := runPrompt(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.achievements, "achievements", generation.DefaultAchievements, "Achievements per work experience")
	return cmd
}

func runPrompt(ctx context.Context, profilePath, jdPath string, opts *promptOptions) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := loadSnapshot(profilePath)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(jdPath)
	if err != nil {
		return "", errors.Wrap(err, "read job description")
	}
	if len(raw) > extract.MaxUploadBytes {
		return "", errors.Errorf("job description exceeds %d bytes", extract.MaxUploadBytes)
	}
	jd, err := extract.TextFromBytes(ctx, raw, "", filepath.Base(jdPath))
	if err != nil {
		return "", errors.Wrap(err, "extract job description")
	}

	return generation.BuildPrompt(snap, jd, opts.achievements)
}

// loadSnapshot reads a profile in the API response shape.
func loadSnapshot(path string) (profiles.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return profiles.Snapshot{}, errors.Wrap(err, "read profile")
	}
	var doc profiles.SnapshotResponse
	if err := json.Unmarshal(raw, &doc); err != nil {
		return profiles.Snapshot{}, errors.Wrap(err, "decode profile")
	}
	if doc.Profile.Name == "" {
		return profiles.Snapshot{}, errors.New("profile.name is required")
	}

	snap := profiles.Snapshot{
		Profile: profiles.Profile{
			ID:       doc.Profile.ID,
			Name:     doc.Profile.Name,
			Email:    doc.Profile.Email,
			Phone:    doc.Profile.Phone,
			Location: doc.Profile.Location,
		},
	}
	for i, exp := range doc.WorkExperiences {
		start, end, err := dateRange(exp.StartDate, exp.EndDate)
		if err != nil {
			return profiles.Snapshot{}, errors.Wrapf(err, "workExperiences[%d]", i)
		}
		if exp.IsCurrent {
			end = nil
		}
		snap.WorkExperiences = append(snap.WorkExperiences, profiles.WorkExperience{
			ID:        exp.ID,
			Company:   exp.Company,
			Position:  exp.Position,
			StartDate: start,
			EndDate:   end,
			IsCurrent: exp.IsCurrent,
		})
	}
	for i, edu := range doc.Educations {
		start, end, err := dateRange(edu.StartDate, edu.EndDate)
		if err != nil {
			return profiles.Snapshot{}, errors.Wrapf(err, "educations[%d]", i)
		}
		snap.Educations = append(snap.Educations, profiles.Education{
			ID:         edu.ID,
			University: edu.University,
			Degree:     edu.Degree,
			StartDate:  start,
			EndDate:    end,
		})
	}
	return snap, nil
}

func dateRange(startRaw, endRaw string) (start time.Time, end *time.Time, err error) {
	start, err = model.ParseDate(startRaw)
	if err != nil {
		return start, nil, err
	}
	if endRaw == "" {
		return start, nil, nil
	}
	parsed, err := model.ParseDate(endRaw)
	if err != nil {
		return start, nil, err
	}
	return start, &parsed, nil
}
