package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/timur/tennis-hub/internal/domain"
)

func (a *app) cmdNews(args []string) error {
	fs := flag.NewFlagSet("news", flag.ExitOnError)
	featured := fs.Bool("featured", false, "only featured items")
	read := fs.String("read", "", "read one item by id (increments its view count)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	if *read != "" {
		id, err := uuid.Parse(*read)
		if err != nil {
			return fmt.Errorf("invalid news id %q", *read)
		}
		item, err := a.client.NewsDetail(ctx, id)
		if err != nil {
			return err
		}
		views, err := a.client.IncrementNewsViews(ctx, id)
		if err != nil {
			// The article still renders; the counter is cosmetic.
			a.log.Debug().Err(err).Msg("[cli.news] failed to increment views")
			views = item.Views
		}
		fmt.Printf("%s\n%s | %s | %s | %d views\n\n%s\n",
			item.Title, item.Category, item.Author, item.PublishedDate, views, item.Content)
		return nil
	}

	var items []domain.News
	var err error
	if *featured {
		items, err = a.client.FeaturedNews(ctx)
	} else {
		items, err = a.client.News(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCATEGORY\tTITLE\tID")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.PublishedDate, item.Category, item.Title, item.ID)
	}
	return w.Flush()
}

func (a *app) cmdPlayers(args []string) error {
	fs := flag.NewFlagSet("players", flag.ExitOnError)
	tour := fs.String("tour", "atp", "tour to list (atp or wta)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	var players []domain.Player
	var err error
	switch strings.ToLower(*tour) {
	case "atp":
		players, err = a.client.ATPPlayers(ctx)
	case "wta":
		players, err = a.client.WTAPlayers(ctx)
	default:
		return fmt.Errorf("unknown tour %q, want atp or wta", *tour)
	}
	if err != nil {
		return err
	}

	printPlayerTable(players)
	return nil
}

func (a *app) cmdRankings(args []string) error {
	top, err := a.client.TopPlayers(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("ATP")
	printPlayerTable(top.ATP)
	fmt.Println("\nWTA")
	printPlayerTable(top.WTA)
	return nil
}

func (a *app) cmdPlayer(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tennishub player <id>")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid player id %q", args[0])
	}

	p, err := a.client.PlayerDetail(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) - #%d %s, %d points\n", p.Name, p.Country, p.Rank, p.Tour, p.Points)
	fmt.Printf("Record: %d-%d (%.1f%% over %d matches)\n", p.Wins, p.Losses, p.WinRate(), p.TotalMatches())
	if pref := p.SurfacePreference(); pref != "" {
		fmt.Printf("Best surface: %s (hard %.0f%% / clay %.0f%% / grass %.0f%%)\n",
			pref,
			p.SurfaceShare(domain.SurfaceHard),
			p.SurfaceShare(domain.SurfaceClay),
			p.SurfaceShare(domain.SurfaceGrass))
	}
	if p.GrandSlamTitles > 0 || p.MastersTitles > 0 {
		fmt.Printf("Titles: %d Grand Slam, %d Masters\n", p.GrandSlamTitles, p.MastersTitles)
	}
	if p.Coach != "" {
		fmt.Printf("Coach: %s\n", p.Coach)
	}
	if p.Biography != "" {
		fmt.Printf("\n%s\n", p.Biography)
	}
	return nil
}

func (a *app) cmdTournaments(args []string) error {
	ctx := context.Background()

	if len(args) > 0 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid tournament id %q", args[0])
		}
		t, err := a.client.TournamentDetail(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s - %s (%s)\n", t.Name, t.Location, t.Category)
		fmt.Printf("%s to %s (%d days), %s courts, prize money %s\n",
			t.StartDate, t.EndDate, t.DurationDays(), t.Surface, t.PrizeMoney)
		if t.Description != "" {
			fmt.Printf("\n%s\n", t.Description)
		}
		return nil
	}

	tournaments, err := a.client.Tournaments(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "START\tNAME\tLOCATION\tSURFACE\tCATEGORY\tID")
	for _, t := range tournaments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.StartDate, t.Name, t.Location, t.Surface, t.Category, t.ID)
	}
	return w.Flush()
}

func (a *app) cmdChat(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	history := fs.Bool("history", false, "show past exchanges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, ok := a.session.Current(); !ok {
		return domain.ErrNotAuthenticated
	}

	ctx := context.Background()
	if *history {
		entries, err := a.client.ChatHistory(ctx)
		if err != nil {
			return err
		}
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Printf("[%s] You: %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Message)
			fmt.Printf("           AI: %s\n\n", e.Response)
		}
		return nil
	}

	message := strings.Join(fs.Args(), " ")
	if message == "" {
		return fmt.Errorf("usage: tennishub chat <message>")
	}

	response, err := a.client.SendChat(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(response)
	return nil
}

func printPlayerTable(players []domain.Player) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tCOUNTRY\tPOINTS\tW-L\tWIN%")
	for _, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d-%d\t%.1f\n",
			p.Rank, p.Name, p.Country, p.Points, p.Wins, p.Losses, p.WinRate())
	}
	w.Flush()
}
