package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/timur/tennis-hub/internal/search"
)

func (a *app) cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	interactive := fs.Bool("i", false, "interactive live preview")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *interactive {
		return a.interactiveSearch()
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		return fmt.Errorf("usage: tennishub search <query>")
	}
	return a.fullSearch(query)
}

// fullSearch is the "view all results" page: no preview truncation.
func (a *app) fullSearch(query string) error {
	ctx := context.Background()
	srcs := a.sources()
	result := search.ResultSet{Query: query}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if items, err := srcs.News(ctx, query); err == nil {
			result.News = items
		}
	}()
	go func() {
		defer wg.Done()
		if players, err := srcs.ATP(ctx, query); err == nil {
			result.ATP = players
		}
	}()
	go func() {
		defer wg.Done()
		if players, err := srcs.WTA(ctx, query); err == nil {
			result.WTA = players
		}
	}()
	wg.Wait()

	printResults(result, false)
	return nil
}

func (a *app) interactiveSearch() error {
	results := make(chan search.ResultSet, 1)
	agg := search.NewAggregator(a.sources(),
		search.WithListener(func(r search.ResultSet) {
			results <- r
		}),
		search.WithLogger(a.log),
	)
	defer agg.Close()

	fmt.Println("Type to search, '!' to open full results for the last query, empty line to clear, Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	lastQuery := ""
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()

		if strings.TrimSpace(line) == "!" {
			if strings.TrimSpace(lastQuery) == "" {
				continue
			}
			agg.Submit(lastQuery)
			<-results // drain the preview clear
			if err := a.fullSearch(lastQuery); err != nil {
				return err
			}
			lastQuery = ""
			continue
		}

		lastQuery = line
		agg.SetQuery(line)
		if strings.TrimSpace(line) == "" {
			// Cleared synchronously; drain the empty emission.
			<-results
			continue
		}
		printResults(<-results, true)
	}
}

func printResults(r search.ResultSet, preview bool) {
	if r.Empty() {
		if !preview {
			fmt.Println("No results.")
		}
		return
	}

	if len(r.News) > 0 {
		fmt.Println("News:")
		for _, item := range r.News {
			fmt.Printf("  %s  %s (%s)\n", item.ID, item.Title, item.PublishedDate)
		}
	}
	if len(r.ATP) > 0 {
		fmt.Println("ATP players:")
		for _, p := range r.ATP {
			fmt.Printf("  %s  #%d %s (%s)\n", p.ID, p.Rank, p.Name, p.Country)
		}
	}
	if len(r.WTA) > 0 {
		fmt.Println("WTA players:")
		for _, p := range r.WTA {
			fmt.Printf("  %s  #%d %s (%s)\n", p.ID, p.Rank, p.Name, p.Country)
		}
	}
	if preview {
		fmt.Printf("%d results. '!' opens the full view.\n", r.Total())
	}
}

func (a *app) sources() search.Sources {
	return search.Sources{
		News: a.client.SearchNews,
		ATP:  a.client.SearchATP,
		WTA:  a.client.SearchWTA,
	}
}
