package main

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/htmlmsg"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// actionTimeout bounds an action including the wait for the remote.
const actionTimeout = 30 * time.Second

type outcomeLine struct {
	Kind     toggle.Kind    `json:"kind"`
	Snapshot any            `json:"snapshot,omitempty"`
	Post     *model.PostKey `json:"post,omitempty"`
	Error    string         `json:"error,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// writeOutcomes prints each outcome as a JSON line. success renders the
// message for a Success outcome from the recorded snapshot. Failed terminal
// outcomes are returned as an error so the exit status reflects them.
func writeOutcomes[S any](cmd *cobra.Command, op string, seq iter.Seq[toggle.Outcome[S]], success func(S) htmlmsg.Message) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	var failed *toggle.Outcome[S]
	var snapshot S
	for o := range seq {
		line := outcomeLine{Kind: o.Kind}
		switch o.Kind {
		case toggle.LocalStateRecorded:
			line.Snapshot = o.Snapshot
			snapshot = o.Snapshot
		case toggle.PreloadContent:
			key := o.Post
			line.Post = &key
		case toggle.Success:
			if success != nil {
				line.Message = success(snapshot).Markdown()
			}
		case toggle.NoNetwork:
			line.Message = formatter.String(htmlmsg.KeyNoNetwork)
		case toggle.AlreadyRunning:
			line.Message = formatter.String(htmlmsg.KeyAlreadyInProgress)
		case toggle.RequestFailed:
			line.Message = formatter.String(htmlmsg.KeyRequestFailed)
		}
		if o.Err != nil {
			line.Error = o.Err.Error()
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
		if o.Kind.Failed() {
			failed = &o
		}
	}
	if failed != nil {
		return fmt.Errorf("%s: %s", op, failed)
	}
	return nil
}
