// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package response

import (
	"time"

	"github.com/juju/errors"

	"github.com/juju/gamejolt/request"
)

// Value is the decoded result of one endpoint call. The concrete type
// depends on the endpoint of the request that produced it.
type Value interface {
	// Endpoint returns the endpoint of the originating request.
	Endpoint() request.Endpoint

	// Request returns the request that produced this value. Requests
	// are compared by identity, which keeps structurally equal
	// sub-requests of one batch apart.
	Request() request.Request

	// Outcome returns the success flag and message shared by every
	// response.
	Outcome() Result
}

// Result holds the fields present in every response. A false Success
// is a normal negative answer from the server, with the reason in
// Message.
type Result struct {
	Success bool
	Message string

	request request.Request
}

// Endpoint is part of the Value interface.
func (r Result) Endpoint() request.Endpoint {
	if r.request == nil {
		return 0
	}
	return r.request.Endpoint()
}

// Request is part of the Value interface.
func (r Result) Request() request.Request {
	return r.request
}

// Outcome is part of the Value interface.
func (r Result) Outcome() Result {
	return r
}

// StatusValue answers the calls that only report success: scores/add,
// the session calls, users/auth, data-store set and remove, and the
// trophy grant and revoke calls.
type StatusValue struct {
	Result
}

// Score is one entry of a score table.
type Score struct {
	Score           string
	Sort            int64
	ExtraData       string
	User            string
	UserID          int64
	Guest           string
	Stored          string
	StoredTimestamp int64
}

// ScoresValue answers a scores fetch, best score first.
type ScoresValue struct {
	Result
	Scores []Score
}

// RankValue answers scores/get-rank.
type RankValue struct {
	Result
	Rank int64
}

// Table describes a score table.
type Table struct {
	ID          int64
	Name        string
	Description string
	Primary     bool
}

// TablesValue answers scores/tables.
type TablesValue struct {
	Result
	Tables []Table
}

// UserType is the role of an account.
type UserType string

const (
	UserTypeUser          UserType = "User"
	UserTypeDeveloper     UserType = "Developer"
	UserTypeModerator     UserType = "Moderator"
	UserTypeAdministrator UserType = "Administrator"
)

// UserStatus is the standing of an account.
type UserStatus string

const (
	UserStatusActive UserStatus = "Active"
	UserStatusBanned UserStatus = "Banned"
)

// User is a public user record.
type User struct {
	ID                    int64
	Type                  UserType
	Username              string
	AvatarURL             string
	SignedUp              string
	SignedUpTimestamp     int64
	LastLoggedIn          string
	LastLoggedInTimestamp int64
	Status                UserStatus
	DeveloperName         string
	DeveloperWebsite      string
	DeveloperDescription  string
}

// UsersValue answers a users fetch.
type UsersValue struct {
	Result
	Users []User
}

// DataValue answers a data-store fetch or update. For an update, Data
// holds the value after the operation was applied.
type DataValue struct {
	Result
	Data string
}

// KeysValue answers data-store/get-keys.
type KeysValue struct {
	Result
	Keys []string
}

// Difficulty ranks a trophy.
type Difficulty string

const (
	Bronze   Difficulty = "Bronze"
	Silver   Difficulty = "Silver"
	Gold     Difficulty = "Gold"
	Platinum Difficulty = "Platinum"
)

// Trophy is one trophy of a game, from the point of view of the player
// the fetch was made for.
type Trophy struct {
	ID          int64
	Title       string
	Description string
	Difficulty  Difficulty
	ImageURL    string

	// Achieved is "false" when the player does not hold the trophy,
	// otherwise the server's description of when it was achieved.
	Achieved string
}

// IsAchieved reports whether the player holds the trophy.
func (t Trophy) IsAchieved() bool {
	return t.Achieved != "" && t.Achieved != "false"
}

// TrophiesValue answers a trophies fetch.
type TrophiesValue struct {
	Result
	Trophies []Trophy
}

// FriendsValue answers a friends fetch.
type FriendsValue struct {
	Result
	FriendIDs []int64
}

// TimeValue answers a time fetch with the server clock, as reported.
type TimeValue struct {
	Result
	Timestamp int64
	Timezone  string
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Second    int
}

// Time returns the reported server time in the reported time zone.
func (v TimeValue) Time() (time.Time, error) {
	loc := time.UTC
	if v.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(v.Timezone); err != nil {
			return time.Time{}, errors.Annotatef(err, "server time zone %q", v.Timezone)
		}
	}
	return time.Unix(v.Timestamp, 0).In(loc), nil
}
