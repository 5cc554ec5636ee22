// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/naturalsort"

	"github.com/juju/gamejolt/cmd"
	"github.com/juju/gamejolt/response"
)

// formatters are offered by every API command.
var formatters = map[string]cmd.Formatter{
	"yaml":    cmd.FormatYaml,
	"json":    cmd.FormatJson,
	"tabular": formatTabular,
}

// formatTabular writes list values as a table. Values without a list
// fall back to YAML.
func formatTabular(writer io.Writer, value interface{}) error {
	tw := cmd.TabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}

	switch v := value.(type) {
	case response.ScoresValue:
		print("SCORE", "SORT", "PLAYER", "STORED")
		for _, score := range v.Scores {
			player := score.User
			if player == "" {
				player = score.Guest + " (guest)"
			}
			print(score.Score, strconv.FormatInt(score.Sort, 10), player, score.Stored)
		}
	case response.TablesValue:
		print("ID", "NAME", "PRIMARY", "DESCRIPTION")
		for _, table := range v.Tables {
			print(strconv.FormatInt(table.ID, 10), table.Name, strconv.FormatBool(table.Primary), table.Description)
		}
	case response.TrophiesValue:
		print("ID", "TITLE", "DIFFICULTY", "ACHIEVED")
		for _, trophy := range v.Trophies {
			achieved := "no"
			if trophy.IsAchieved() {
				achieved = trophy.Achieved
			}
			print(strconv.FormatInt(trophy.ID, 10), trophy.Title, string(trophy.Difficulty), achieved)
		}
	case response.UsersValue:
		print("ID", "USERNAME", "TYPE", "STATUS", "LAST-LOGGED-IN")
		for _, user := range v.Users {
			print(strconv.FormatInt(user.ID, 10), user.Username, string(user.Type), string(user.Status), user.LastLoggedIn)
		}
	case response.KeysValue:
		keys := append([]string(nil), v.Keys...)
		naturalsort.Sort(keys)
		print("KEY")
		for _, key := range keys {
			print(key)
		}
	case response.FriendsValue:
		print("FRIEND-ID")
		for _, id := range v.FriendIDs {
			print(strconv.FormatInt(id, 10))
		}
	default:
		return errors.Trace(cmd.FormatYaml(writer, value))
	}
	return errors.Trace(tw.Flush())
}
