package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Nutrient order and units as served by the targets endpoint.
var nutrientOrder = []string{
	"protein", "fat", "sodium", "potassium", "magnesium", "iron", "zinc",
	"vitamin_a", "vitamin_d", "vitamin_k2", "vitamin_b12", "choline", "iodine",
}

type factor struct {
	Nutrient   string  `json:"nutrient"`
	Multiplier float64 `json:"multiplier"`
	Source     string  `json:"source"`
}

type targetsResponse struct {
	Date          string             `json:"date"`
	Base          map[string]float64 `json:"base"`
	Final         map[string]float64 `json:"final"`
	Factors       []factor           `json:"factors"`
	Overridden    []string           `json:"overridden"`
	SaltTeaspoons float64            `json:"salt_teaspoons"`
	Units         map[string]string  `json:"units"`
}

type planFood struct {
	Food            string `json:"food"`
	Weight          string `json:"weight"`
	Nutrients       string `json:"nutrients"`
	FoodExplanation string `json:"foodExplanation"`
	FoodCategory    string `json:"foodCategory"`
}

type planResponse struct {
	Plan            []planFood `json:"plan"`
	PlanExplanation string     `json:"planExplanation"`
	Supplements     string     `json:"supplements"`
}

type gotTargetsMsg targetsResponse
type gotPlanMsg planResponse
type errMsg error

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) client {
	return client{baseURL: baseURL, http: &http.Client{Timeout: 2 * time.Minute}}
}

func (c client) endpoint(path, date string) string {
	u := c.baseURL + path
	if date != "" {
		u += "?" + url.Values{"date": {date}}.Encode()
	}
	return u
}

func (c client) targetsCmd(date string) tea.Cmd {
	return func() tea.Msg {
		var out targetsResponse
		if err := c.do(http.MethodGet, c.endpoint("/targets", date), &out); err != nil {
			return errMsg(err)
		}
		return gotTargetsMsg(out)
	}
}

func (c client) planCmd(date string) tea.Cmd {
	return func() tea.Msg {
		var out planResponse
		if err := c.do(http.MethodPost, c.endpoint("/mealplan", date), &out); err != nil {
			return errMsg(err)
		}
		return gotPlanMsg(out)
	}
}

func (c client) do(method, u string, out any) error {
	req, err := http.NewRequest(method, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("HTTP error: %s: %s", resp.Status, e.Error)
		}
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
