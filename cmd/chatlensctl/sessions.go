package main

import (
	"fmt"

	"github.com/matheus3301/chatlens/internal/lock"
	"github.com/matheus3301/chatlens/internal/session"
	"github.com/spf13/cobra"
)

type sessionInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Running bool   `json:"daemon_running"`
	PID     int    `json:"pid,omitempty"`
}

func sessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List known sessions and whether their daemon is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := session.List()
			if err != nil {
				return err
			}
			infos := make([]sessionInfo, 0, len(names))
			for _, name := range names {
				dir := session.Dir(name)
				info, held, err := lock.Probe(dir)
				if err != nil {
					return err
				}
				si := sessionInfo{Name: name, Path: dir, Running: held}
				if held {
					si.PID = info.PID
				}
				infos = append(infos, si)
			}

			if jsonOut {
				outputJSON(infos)
				return nil
			}
			if len(infos) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			for _, s := range infos {
				running := "stopped"
				if s.Running {
					running = fmt.Sprintf("running, pid %d", s.PID)
				}
				fmt.Printf("%-20s %s (%s)\n", s.Name, s.Path, running)
			}
			return nil
		},
	}
}
