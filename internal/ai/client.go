// Package ai provides a client for generating report narratives with the
// Google generative language API, with local fallbacks when the API is
// disabled or unavailable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	"github.com/muhtegaralfikri/intern-log-system/internal/metrics"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// Client calls the generative language API to produce report text.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	enabled    bool
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new AI client from config.
func NewClient(cfg *config.AIConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		enabled:    cfg.Enabled && cfg.APIKey != "",
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Enabled reports whether API calls will be attempted.
func (c *Client) Enabled() bool {
	return c.enabled
}

// generateContent request/response shapes for the REST API.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends a single prompt and returns the first candidate text.
func (c *Client) generate(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAIRequest(operation, "error")
		return "", fmt.Errorf("failed to call generative API: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveAIRequestDuration(operation, time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAIRequest(operation, "error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("generative API returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		metrics.RecordAIRequest(operation, "error")
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		metrics.RecordAIRequest(operation, "error")
		return "", fmt.Errorf("generative API returned no candidates")
	}

	metrics.RecordAIRequest(operation, "success")
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// SummarizeActivities produces a short narrative summary of logged
// activities. Falls back to a computed summary when the API is disabled
// or fails.
func (c *Client) SummarizeActivities(ctx context.Context, activities []models.Activity) string {
	if !c.enabled {
		return fallbackSummary(activities)
	}

	var sb strings.Builder
	for _, a := range activities {
		fmt.Fprintf(&sb, "- %s: %s (%s, %d minutes) - %s\n",
			a.Date.Format("2006-01-02"), a.Title, a.Category, a.Duration, a.Description)
	}

	prompt := fmt.Sprintf(`Write a professional summary of the following internship activity log.
Format: a concise paragraph covering the main points of the work done.

Activities:
%s
Summary:`, sb.String())

	text, err := c.generate(ctx, "activity_summary", prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("AI summary failed, using fallback")
		return fallbackSummary(activities)
	}
	return strings.TrimSpace(text)
}

// GenerateWeeklyReport produces a structured weekly report narrative for
// the given period.
func (c *Client) GenerateWeeklyReport(ctx context.Context, activities []models.Activity, start, end time.Time) string {
	if !c.enabled {
		return fallbackWeeklyReport(activities, start, end)
	}

	var sb strings.Builder
	for _, a := range activities {
		fmt.Fprintf(&sb, "- %s: %s (%s, %d minutes)\n  Description: %s\n",
			a.Date.Format("2006-01-02"), a.Title, a.Category, a.Duration, a.Description)
	}

	prompt := fmt.Sprintf(`Write a professional, structured weekly internship report.
Period: %s - %s

Activities performed:
%s
Report format:
1. Executive summary (2-3 sentences)
2. Main activities (bullet points)
3. Achievements and output
4. Challenges (if any)
5. Plan for next week (suggestions)

Report:`, start.Format("2006-01-02"), end.Format("2006-01-02"), sb.String())

	text, err := c.generate(ctx, "weekly_report", prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("AI weekly report failed, using fallback")
		return fallbackWeeklyReport(activities, start, end)
	}
	return strings.TrimSpace(text)
}

// SuggestTasks recommends follow-up tasks based on the intern's skills and
// recent activity titles.
func (c *Client) SuggestTasks(ctx context.Context, skills []models.UserSkill, recent []models.Activity) []string {
	if !c.enabled {
		return fallbackSuggestions()
	}

	skillParts := make([]string, 0, len(skills))
	for _, s := range skills {
		skillParts = append(skillParts, fmt.Sprintf("%s (level %d)", s.Skill.Name, s.Level))
	}
	skillsText := strings.Join(skillParts, ", ")
	if skillsText == "" {
		skillsText = "no skill data yet"
	}

	titles := make([]string, 0, 5)
	for i, a := range recent {
		if i >= 5 {
			break
		}
		titles = append(titles, a.Title)
	}
	recentText := strings.Join(titles, ", ")
	if recentText == "" {
		recentText = "no activities yet"
	}

	prompt := fmt.Sprintf(`Based on the intern's skills and recent activities below, suggest 3-5 tasks for skill development.

Skills: %s
Recent activities: %s

Respond with a JSON array of strings, for example: ["Suggestion 1", "Suggestion 2", "Suggestion 3"]
Output only the JSON array, no extra explanation.`, skillsText, recentText)

	text, err := c.generate(ctx, "task_suggestions", prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("AI task suggestions failed, using fallback")
		return fallbackSuggestions()
	}
	if list := parseJSONList(text); list != nil {
		return list
	}
	return fallbackSuggestions()
}

// DailyPrompts returns reflection questions to guide daily logging.
func (c *Client) DailyPrompts(ctx context.Context) []string {
	defaults := []string{
		"What was the main task you worked on today?",
		"Did you attend any important meetings or discussions?",
		"What new skill did you learn?",
		"Did you run into any blockers?",
		"What do you want to accomplish tomorrow?",
	}

	if !c.enabled {
		return defaults
	}

	prompt := fmt.Sprintf(`Today is %s. Give 5 daily reflection questions for an intern.
The questions should help the intern document their work well.

Respond with a JSON array of strings, for example: ["Question 1", "Question 2"]
Output only the JSON array.`, time.Now().Weekday())

	text, err := c.generate(ctx, "daily_prompts", prompt)
	if err != nil {
		return defaults
	}
	if list := parseJSONList(text); list != nil {
		return list
	}
	return defaults
}

// ReflectionQuestions returns weekly reflection questions tailored to the
// categories of the given activities.
func (c *Client) ReflectionQuestions(ctx context.Context, activities []models.Activity) []string {
	defaults := []string{
		"What was your biggest achievement this week?",
		"What was the hardest challenge you faced?",
		"What do you want to learn next week?",
		"How do you feel about your internship progress so far?",
	}

	if !c.enabled || len(activities) == 0 {
		return defaults
	}

	prompt := fmt.Sprintf(`The intern logged activities in these categories: %s
Give 4-5 relevant weekly reflection questions.

Respond with a JSON array of strings.
Output only the JSON array.`, strings.Join(distinctCategories(activities), ", "))

	text, err := c.generate(ctx, "reflection_questions", prompt)
	if err != nil {
		return defaults
	}
	if list := parseJSONList(text); list != nil {
		return list
	}
	return defaults
}

var jsonListPattern = regexp.MustCompile(`(?s)\[.*\]`)

// parseJSONList extracts a JSON string array from model output, which may
// wrap the array in prose or code fences. Returns nil when no valid array
// is found.
func parseJSONList(text string) []string {
	match := jsonListPattern.FindString(text)
	if match == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(match), &list); err != nil {
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

func distinctCategories(activities []models.Activity) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, a := range activities {
		if !seen[a.Category] {
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

func fallbackSummary(activities []models.Activity) string {
	totalMinutes := 0
	for _, a := range activities {
		totalMinutes += a.Duration
	}
	categories := distinctCategories(activities)

	return fmt.Sprintf(
		"During this period, %d activities were completed for a total of %d hours %d minutes. Categories covered: %s.",
		len(activities), totalMinutes/60, totalMinutes%60, strings.Join(categories, ", "))
}

func fallbackWeeklyReport(activities []models.Activity, start, end time.Time) string {
	totalMinutes := 0
	for _, a := range activities {
		totalMinutes += a.Duration
	}
	categories := distinctCategories(activities)

	var sb strings.Builder
	sb.WriteString("## Weekly Report\n")
	fmt.Fprintf(&sb, "Period: %s - %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	sb.WriteString("### Summary\n")
	fmt.Fprintf(&sb, "A total of %d activities were completed over %d hours.\n\n", len(activities), totalMinutes/60)
	sb.WriteString("### Activity Categories\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	sb.WriteString("\n### Activity Log\n")
	for _, a := range activities {
		fmt.Fprintf(&sb, "- %s: %s\n", a.Title, a.Description)
	}
	return strings.TrimSpace(sb.String())
}

func fallbackSuggestions() []string {
	return []string{
		"Read the documentation for the framework currently in use",
		"Review and refactor code written so far",
		"Write unit tests for completed features",
		"Discuss progress with your supervisor",
		"Explore new features that could be added",
	}
}
