package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dom/hero-archive/internal/domain"
)

var priorities = []string{"low", "medium", "high"}

// populate registers count users. Each favorites three heroes, saves one
// draft and reviews one hero.
func populate(client *APIClient, count int, out io.Writer) error {
	heroes, err := client.ListHeroes()
	if err != nil {
		return err
	}
	if len(heroes) < domain.DraftSize {
		return fmt.Errorf("catalog has %d heroes, need at least %d (run seed first)", len(heroes), domain.DraftSize)
	}

	fmt.Fprintf(out, "Populating %d users over %d heroes...\n\n", count, len(heroes))

	for i := 0; i < count; i++ {
		user, token, err := client.RegisterUser(fmt.Sprintf("Player%d", i+1))
		if err != nil {
			fmt.Fprintf(out, "  [%d/%d] FAILED to create user: %v\n", i+1, count, err)
			continue
		}

		for j := 0; j < 3; j++ {
			hero := heroes[(i+j)%len(heroes)]
			if _, err := client.AddFavorite(token, hero.ID, priorities[(i+j)%len(priorities)]); err != nil {
				fmt.Fprintf(out, "  Warning: %s could not favorite %s: %v\n", user.DisplayName, hero.Name, err)
			}
		}

		ids := make([]uint, domain.DraftSize)
		for j := range ids {
			ids[j] = heroes[(i+j)%len(heroes)].ID
		}
		if _, err := client.CreateDraft(token, fmt.Sprintf("Team %d", i+1), ids); err != nil {
			fmt.Fprintf(out, "  Warning: %s could not save a draft: %v\n", user.DisplayName, err)
		}

		hero := heroes[i%len(heroes)]
		rating := i%domain.MaxRating + 1
		if _, err := client.PostReview(token, hero.ID, rating, "simulated review"); err != nil {
			fmt.Fprintf(out, "  Warning: %s could not review %s: %v\n", user.DisplayName, hero.Name, err)
		}

		fmt.Fprintf(out, "  [%d/%d] %s done\n", i+1, count, user.DisplayName)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done!")
	return nil
}

// expect reports whether err is the outcome a call should have produced.
// want is the HTTP status of a rejected call, or 0 when the call must succeed.
func expect(err error, want int) (bool, string) {
	if want == 0 {
		if err != nil {
			return false, err.Error()
		}
		return true, "ok"
	}

	var se *StatusError
	if !errors.As(err, &se) {
		if err == nil {
			return false, fmt.Sprintf("succeeded, want %d", want)
		}
		return false, err.Error()
	}
	if se.Status != want {
		return false, fmt.Sprintf("got %d, want %d: %s", se.Status, want, se.Body)
	}
	return true, fmt.Sprintf("%d", se.Status)
}

// probe creates one resource of each kind as an owner and checks how a
// stranger, an anonymous caller and the owner are answered.
func probe(client *APIClient, out io.Writer) error {
	heroes, err := client.ListHeroes()
	if err != nil {
		return err
	}
	if len(heroes) < domain.DraftSize {
		return fmt.Errorf("catalog has %d heroes, need at least %d (run seed first)", len(heroes), domain.DraftSize)
	}
	ids := make([]uint, domain.DraftSize)
	for i := range ids {
		ids[i] = heroes[i].ID
	}

	_, owner, err := client.RegisterUser("ProbeOwner")
	if err != nil {
		return err
	}
	_, stranger, err := client.RegisterUser("ProbeStranger")
	if err != nil {
		return err
	}

	fav, err := client.AddFavorite(owner, heroes[0].ID, "high")
	if err != nil {
		return err
	}
	draft, err := client.CreateDraft(owner, "Probe", ids)
	if err != nil {
		return err
	}
	review, err := client.PostReview(owner, heroes[0].ID, 4, "probe")
	if err != nil {
		return err
	}

	checks := []struct {
		name string
		want int
		call func() error
	}{
		{"anonymous favorite", http.StatusUnauthorized, func() error {
			_, err := client.AddFavorite("", heroes[1].ID, "low")
			return err
		}},
		{"user creates hero", http.StatusForbidden, func() error {
			_, err := client.CreateHero(stranger, "ProbeHero", "Tank")
			return err
		}},
		{"stranger updates favorite", http.StatusNotFound, func() error {
			return client.UpdateFavorite(stranger, fav.ID, "mine")
		}},
		{"stranger deletes favorite", http.StatusNotFound, func() error {
			return client.DeleteFavorite(stranger, fav.ID)
		}},
		{"stranger reads draft", http.StatusNotFound, func() error {
			_, err := client.GetDraft(stranger, draft.ID)
			return err
		}},
		{"stranger reads missing draft", http.StatusNotFound, func() error {
			_, err := client.GetDraft(stranger, draft.ID+1000000)
			return err
		}},
		{"stranger deletes draft", http.StatusNotFound, func() error {
			return client.DeleteDraft(stranger, draft.ID)
		}},
		{"stranger updates review", http.StatusNotFound, func() error {
			return client.UpdateReview(stranger, review.ID, 1)
		}},
		{"owner reads draft", 0, func() error {
			_, err := client.GetDraft(owner, draft.ID)
			return err
		}},
		{"owner saves short draft", http.StatusBadRequest, func() error {
			_, err := client.CreateDraft(owner, "Short", ids[:domain.DraftSize-1])
			return err
		}},
		{"owner rates out of range", http.StatusBadRequest, func() error {
			return client.UpdateReview(owner, review.ID, domain.MaxRating+1)
		}},
	}

	failed := 0
	for _, c := range checks {
		ok, detail := expect(c.call(), c.want)
		status := "PASS"
		if !ok {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "  %s  %-30s %s\n", status, c.name, detail)
	}

	if err := client.DeleteFavorite(owner, fav.ID); err != nil {
		fmt.Fprintf(out, "  Warning: cleanup failed: %v\n", err)
	}
	if err := client.DeleteDraft(owner, draft.ID); err != nil {
		fmt.Fprintf(out, "  Warning: cleanup failed: %v\n", err)
	}

	fmt.Fprintf(out, "\n%d passed, %d failed\n", len(checks)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d probe checks failed", failed)
	}
	return nil
}
