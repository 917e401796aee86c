package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lazypower/soulgatchi/internal/client"
	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/pet"
	"github.com/spf13/cobra"
)

var (
	resetEmoji   string
	historyLimit int
	livesLimit   int
)

func init() {
	resetCmd.Flags().StringVarP(&resetEmoji, "emoji", "e", "", "Emoji for the new pet (default keeps the current one)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of activities")
	livesCmd.Flags().IntVarP(&livesLimit, "limit", "n", 20, "Maximum number of lives")
}

func newClient() (*client.Client, error) {
	c := client.New(serverURL)
	if !c.Healthy() {
		return nil, fmt.Errorf("soulgatchi server not reachable at %s (run `soulgatchi serve`)", c.URL())
	}
	return c, nil
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		data, err := c.Get("/api/pet")
		if err != nil {
			return err
		}
		var st engine.Status
		if err := json.Unmarshal(data, &st); err != nil {
			return fmt.Errorf("decode status: %w", err)
		}
		printStatus(os.Stdout, st)
		return nil
	},
}

// --- action commands ---

var ritualCmd = &cobra.Command{
	Use:   "ritual [name]",
	Short: "Recite a ritual once",
	Long:  "Recite a ritual once. Subhanallah, Alhamdulillah, Allahu Akbar and Astaghfirullah each favour one stat; every 33rd recitation completes a set.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return runAction(os.Stdout, func(c *client.Client) ([]byte, error) {
			return c.Post("/api/pet/rituals/"+url.PathEscape(name), nil)
		})
	},
}

var prayCmd = &cobra.Command{
	Use:       "pray [slot]",
	Short:     "Complete one of today's prayers",
	Args:      cobra.ExactArgs(1),
	ValidArgs: prayerNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := pet.ParsePrayer(args[0])
		if err != nil {
			return err
		}
		return runAction(os.Stdout, func(c *client.Client) ([]byte, error) {
			return c.Post("/api/pet/prayers/"+string(slot), nil)
		})
	},
}

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Let the pet rest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(os.Stdout, func(c *client.Client) ([]byte, error) {
			return c.Post("/api/pet/rest", nil)
		})
	},
}

var studyCmd = &cobra.Command{
	Use:   "study [topic]",
	Short: "Study a topic together",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		return runAction(os.Stdout, func(c *client.Client) ([]byte, error) {
			return c.PostJSON("/api/pet/study", map[string]string{"topic": topic})
		})
	},
}

func runAction(w io.Writer, call func(*client.Client) ([]byte, error)) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	data, err := call(c)
	if err != nil {
		return actionError(err)
	}

	var res engine.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	printResult(w, res)
	return nil
}

// actionError unwraps a 409 into the server's message, such as "Nur has
// passed away". Other errors pass through.
func actionError(err error) error {
	var se *client.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusConflict {
		return err
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(se.Body, &body) != nil || body.Error == "" {
		return se
	}
	return errors.New(body.Error)
}

// --- reset commands ---

var resetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Start a new life",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		req := map[string]string{"emoji": resetEmoji}
		if len(args) > 0 {
			req["name"] = args[0]
		}
		data, err := c.PostJSON("/api/pet/reset", req)
		if err != nil {
			return err
		}
		var st engine.Status
		if err := json.Unmarshal(data, &st); err != nil {
			return fmt.Errorf("decode status: %w", err)
		}
		fmt.Printf("%s %s was born.\n\n", st.Profile.Emoji, st.Profile.Name)
		printStatus(os.Stdout, st)
		return nil
	},
}

var dailyResetCmd = &cobra.Command{
	Use:   "daily-reset",
	Short: "Clear today's prayers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if _, err := c.Post("/api/pet/daily-reset", nil); err != nil {
			return err
		}
		fmt.Println("Prayers cleared for a new day.")
		return nil
	},
}

// --- history commands ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		data, err := c.Get(fmt.Sprintf("/api/history?limit=%d", historyLimit))
		if err != nil {
			return err
		}
		var body struct {
			Activities []struct {
				Kind   string    `json:"kind"`
				Detail string    `json:"detail"`
				Stats  pet.Stats `json:"stats"`
				At     time.Time `json:"at"`
			} `json:"activities"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("decode history: %w", err)
		}
		if len(body.Activities) == 0 {
			fmt.Println("No activities yet.")
			return nil
		}
		for _, a := range body.Activities {
			label := a.Kind
			if a.Detail != "" {
				label += ": " + a.Detail
			}
			fmt.Printf("%s  %-28s %s\n", a.At.Local().Format("Jan 02 15:04:05"), label, compactStats(a.Stats))
		}
		return nil
	},
}

var livesCmd = &cobra.Command{
	Use:   "lives",
	Short: "Show past and current lives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		data, err := c.Get(fmt.Sprintf("/api/lives?limit=%d", livesLimit))
		if err != nil {
			return err
		}
		var body struct {
			Lives []struct {
				Name      string    `json:"name"`
				Emoji     string    `json:"emoji"`
				Status    string    `json:"status"`
				AgeHours  int       `json:"age_hours"`
				StartedAt time.Time `json:"started_at"`
			} `json:"lives"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("decode lives: %w", err)
		}
		if len(body.Lives) == 0 {
			fmt.Println("No lives recorded.")
			return nil
		}
		for _, l := range body.Lives {
			fmt.Printf("%s %-16s %-6s age %dh  born %s\n",
				l.Emoji, l.Name, l.Status, l.AgeHours, l.StartedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func prayerNames() []string {
	out := make([]string, len(pet.Prayers))
	for i, p := range pet.Prayers {
		out[i] = string(p)
	}
	return out
}
