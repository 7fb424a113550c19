package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepChoosingAction step = iota
	stepEnteringEmail
	stepEnteringPassword
	stepAuthenticating
	stepLoadingArticles
	stepBrowsing
)

var actions = []string{"Log in", "Register"}

type articleRow struct {
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

type model struct {
	step         step
	serverURL    string
	cursor       int
	register     bool
	email        string
	password     string
	token        string
	articles     []articleRow
	total        int64
	currentInput string
	message      string
	quitting     bool
}

type authSuccessMsg struct {
	email string
	token string
}

type articlesLoadedMsg struct {
	articles []articleRow
	total    int64
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	serverURL := os.Getenv("API_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}
	return model{
		step:      stepChoosingAction,
		serverURL: serverURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func authenticate(serverURL, email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		path := "/api/auth/login"
		if register {
			path = "/api/auth/register"
		}

		payload, _ := json.Marshal(map[string]string{
			"email":    email,
			"password": password,
		})

		req, _ := http.NewRequest("POST", serverURL+path, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach the server at %s", serverURL)}
		}
		defer resp.Body.Close()

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		if !env.Success {
			if env.Message != "" {
				return errMsg{fmt.Errorf("%s", env.Message)}
			}
			return errMsg{fmt.Errorf("authentication failed")}
		}

		var data struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
			Token string `json:"token"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
			return errMsg{fmt.Errorf("authentication failed")}
		}

		return authSuccessMsg{email: data.User.Email, token: data.Token}
	}
}

func loadArticles(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		req, _ := http.NewRequest("GET", serverURL+"/api/articles?limit=10", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not load articles: %w", err)}
		}
		defer resp.Body.Close()

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !env.Success {
			return errMsg{fmt.Errorf("could not load articles")}
		}

		var data struct {
			Articles   []articleRow `json:"articles"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return errMsg{fmt.Errorf("could not load articles")}
		}

		return articlesLoadedMsg{articles: data.Articles, total: data.Pagination.Total}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step == stepChoosingAction || m.step == stepBrowsing {
				m.quitting = true
				return m, tea.Quit
			}
			m.currentInput += "q"

		case "up", "k":
			if m.step == stepChoosingAction && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepChoosingAction && m.cursor < len(actions)-1 {
				m.cursor++
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepChoosingAction:
				m.register = m.cursor == 1
				m.step = stepEnteringEmail

			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepAuthenticating
					m.message = "Authenticating..."
					return m, authenticate(m.serverURL, m.email, m.password, m.register)
				}

			case stepBrowsing:
				m.quitting = true
				return m, tea.Quit
			}

		default:
			if m.step == stepEnteringEmail || m.step == stepEnteringPassword {
				m.currentInput += msg.String()
			}
		}

	case authSuccessMsg:
		m.token = msg.token
		m.step = stepLoadingArticles
		m.message = successStyle.Render("Signed in as " + msg.email)
		return m, loadArticles(m.serverURL, m.token)

	case articlesLoadedMsg:
		m.articles = msg.articles
		m.total = msg.total
		m.step = stepBrowsing

	case errMsg:
		m.message = errorStyle.Render(msg.err.Error())
		m.step = stepChoosingAction
		m.password = ""
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Knowledge Base Setup"))
	s.WriteString("\n\n")

	switch m.step {
	case stepChoosingAction:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("What would you like to do?\n\n"))
		for i, action := range actions {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(action)))
		}
		s.WriteString("\nUse up/down, Enter to select, q to quit\n")

	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepAuthenticating, stepLoadingArticles:
		s.WriteString(m.message + "\n")

	case stepBrowsing:
		s.WriteString(m.message + "\n\n")
		s.WriteString(fmt.Sprintf("You have %d article(s).\n\n", m.total))
		for _, a := range m.articles {
			line := a.Title
			if len(a.Tags) > 0 {
				line += "  [" + strings.Join(a.Tags, ", ") + "]"
			}
			s.WriteString(normalStyle.Render(line) + "\n")
		}
		s.WriteString("\nPress Enter or q to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
