package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/plannivo/booking-api/internal/domain/servicetag"
)

func newClassifyCmd() *cobra.Command {
	var service string

	c := &cobra.Command{
		Use:   "classify TEXT...",
		Short: "Classify a package or service name into tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			resp := servicetag.ClassifyResponse{Tags: servicetag.Classify(text)}
			if service != "" {
				svc := servicetag.Classify(service)
				matches := servicetag.MatchSets(resp.Tags, svc)
				resp.ServiceTags = &svc
				resp.Matches = &matches
			}
			return printJSON(cmd, resp)
		},
	}

	c.Flags().StringVar(&service, "service", "", "Service name to match the package against")
	return c
}
