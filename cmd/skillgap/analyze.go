package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillgap-analyzer/internal/analyzer"
	"github.com/jonathan/skillgap-analyzer/internal/observability"
	"github.com/jonathan/skillgap-analyzer/internal/schemas"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot skill gap analysis",
	Long: `Analyze a resume against a target role and print the resulting analysis as JSON.

The skill profile file carries the structured inputs:

  {
    "current_role": "Systems Administrator",
    "current_skills": [{"name": "Python", "level": "advanced"}],
    "target_occupation_code": "15-1252.00",
    "target_skills": [{"name": "Kubernetes", "importance": 90, "required_level": 70, "hours_to_acquire": 160}]
  }

target_skills may be omitted when an occupation code and a taxonomy provider
are configured.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath   string
	analyzeResumePath   string
	analyzeProfilePath  string
	analyzeUserID       string
	analyzeResumeID     string
	analyzeTargetRole   string
	analyzeAvailability float64
	analyzeOutPath      string
	analyzeVerbose      bool
)

// skillProfile is the analyze input file format.
type skillProfile struct {
	CurrentRole          string              `json:"current_role"`
	CurrentSkills        []types.ResumeSkill `json:"current_skills"`
	TargetOccupationCode string              `json:"target_occupation_code,omitempty"`
	TargetSkills         []types.TargetSkill `json:"target_skills,omitempty"`
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeProfilePath, "profile", "p", "", "Path to skill profile JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeUserID, "user", "u", "", "User identifier (required)")
	analyzeCmd.Flags().StringVar(&analyzeResumeID, "resume-id", "", "Resume identifier (defaults to the resume file name)")
	analyzeCmd.Flags().StringVarP(&analyzeTargetRole, "target-role", "t", "", "Target role title (required)")
	analyzeCmd.Flags().Float64Var(&analyzeAvailability, "availability", 10, "Weekly learning hours")
	analyzeCmd.Flags().StringVarP(&analyzeOutPath, "out", "o", "", "Write analysis JSON to file instead of stdout")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("profile")
	_ = analyzeCmd.MarkFlagRequired("user")
	_ = analyzeCmd.MarkFlagRequired("target-role")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	resumeText, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	profileData, err := os.ReadFile(analyzeProfilePath)
	if err != nil {
		return fmt.Errorf("failed to read skill profile: %w", err)
	}
	if err := schemas.ValidateSkillProfile(profileData); err != nil {
		return err
	}
	var profile skillProfile
	if err := json.Unmarshal(profileData, &profile); err != nil {
		return fmt.Errorf("failed to parse skill profile: %w", err)
	}

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	resumeID := analyzeResumeID
	if resumeID == "" {
		resumeID = analyzeResumePath
	}

	res, err := d.analyzer.Analyze(ctx, analyzer.Request{
		UserID:               analyzeUserID,
		ResumeID:             resumeID,
		ResumeText:           string(resumeText),
		CurrentRole:          profile.CurrentRole,
		CurrentSkills:        profile.CurrentSkills,
		TargetRole:           analyzeTargetRole,
		TargetOccupationCode: profile.TargetOccupationCode,
		TargetSkills:         profile.TargetSkills,
		AvailabilityHours:    analyzeAvailability,
	})
	if err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(os.Stderr).PrintAnalysis(res.Analysis)
	}

	out, err := json.MarshalIndent(res.Analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	if analyzeOutPath != "" {
		if err := os.WriteFile(analyzeOutPath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
		fmt.Printf("Analysis written to %s (from cache: %v)\n", analyzeOutPath, res.FromCache)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
