package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/passvault/internal/client/apiclient"
)

const timeLayout = "2006-01-02 15:04"

func printEntries(w io.Writer, list []apiclient.Entry) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No entries")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tCATEGORY\tUPDATED")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.UserName, e.Category, e.UpdatedAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func printEntry(w io.Writer, e *apiclient.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	rows := [][2]string{
		{"ID", e.ID},
		{"Title", e.Title},
		{"Username", e.UserName},
		{"Password", e.Password},
		{"URL", e.URL},
		{"Category", e.Category},
		{"Tags", strings.Join(e.Tags, ", ")},
		{"Notes", e.Notes},
		{"Created", e.CreatedAt.Local().Format(timeLayout)},
		{"Updated", e.UpdatedAt.Local().Format(timeLayout)},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}
