// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package request defines the typed calls understood by the game API and
// the rules for turning them into canonical, signable query strings.
//
// Every request is built through a constructor that validates the
// mandatory parameters. Once built, a request is never mutated and may be
// shared between goroutines; its parameters are only handed out as
// copies.
package request

import (
	"strings"

	"github.com/juju/errors"
)

// Request is one typed call against a single endpoint. The set of
// implementations is closed: only the types in this package satisfy it.
type Request interface {
	// Endpoint identifies the operation this request calls.
	Endpoint() Endpoint

	// GameID returns the game the request is made on behalf of.
	GameID() string

	// query returns the tagged parameter struct that is encoded into
	// the query string.
	query() interface{}
}

type base struct {
	endpoint Endpoint
	gameID   string
}

// Endpoint is part of the Request interface.
func (b base) Endpoint() Endpoint {
	return b.endpoint
}

// GameID is part of the Request interface.
func (b base) GameID() string {
	return b.gameID
}

// Credentials identify the player a call is made for.
type Credentials struct {
	Username  string `url:"username,omitempty"`
	UserToken string `url:"user_token,omitempty"`
}

// IsZero reports whether no credentials were supplied.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.UserToken == ""
}

func (c Credentials) validate(required bool) error {
	if c.IsZero() {
		if required {
			return errors.NotValidf("empty credentials")
		}
		return nil
	}
	if c.Username == "" || c.UserToken == "" {
		return errors.NotValidf("credentials with missing username or user token")
	}
	return nil
}

func checkGameID(gameID string) error {
	if strings.TrimSpace(gameID) == "" {
		return errors.NotValidf("empty game id")
	}
	return nil
}

func checkKey(key string) error {
	if key == "" {
		return errors.NotValidf("empty data-store key")
	}
	return nil
}

// ScoresAddParams holds the parameters of a scores/add call.
type ScoresAddParams struct {
	GameID string `url:"game_id"`
	Credentials
	Guest     string `url:"guest,omitempty"`
	Score     string `url:"score"`
	Sort      int64  `url:"sort"`
	ExtraData string `url:"extra_data,omitempty"`
	TableID   int    `url:"table_id,omitempty"`
}

// ScoresAddRequest submits a score for a player or a guest.
type ScoresAddRequest struct {
	base
	p ScoresAddParams
}

// NewScoresAdd returns a validated scores/add request. Either credentials
// or a guest name must be given, but not both.
func NewScoresAdd(p ScoresAddParams) (*ScoresAddRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if p.Score == "" {
		return nil, errors.NotValidf("empty score")
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	switch {
	case p.Credentials.IsZero() && p.Guest == "":
		return nil, errors.NotValidf("score without credentials or guest name")
	case !p.Credentials.IsZero() && p.Guest != "":
		return nil, errors.NotValidf("score with both credentials and guest name")
	}
	return &ScoresAddRequest{base: base{ScoresAdd, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *ScoresAddRequest) Params() ScoresAddParams { return r.p }

func (r *ScoresAddRequest) query() interface{} { return r.p }

// ScoresFetchParams holds the parameters of a scores fetch.
type ScoresFetchParams struct {
	GameID string `url:"game_id"`
	Credentials
	Guest      string `url:"guest,omitempty"`
	Limit      int    `url:"limit,omitempty"`
	TableID    int    `url:"table_id,omitempty"`
	BetterThan *int64 `url:"better_than,omitempty"`
	WorseThan  *int64 `url:"worse_than,omitempty"`
}

// ScoresFetchRequest lists scores of a table, optionally restricted to
// one player.
type ScoresFetchRequest struct {
	base
	p ScoresFetchParams
}

// NewScoresFetch returns a validated scores fetch request.
func NewScoresFetch(p ScoresFetchParams) (*ScoresFetchRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	if !p.Credentials.IsZero() && p.Guest != "" {
		return nil, errors.NotValidf("scores fetch with both credentials and guest name")
	}
	if p.Limit < 0 {
		return nil, errors.NotValidf("negative limit %d", p.Limit)
	}
	if p.BetterThan != nil && p.WorseThan != nil {
		return nil, errors.NotValidf("combined better than and worse than filters")
	}
	p.BetterThan = copyInt64(p.BetterThan)
	p.WorseThan = copyInt64(p.WorseThan)
	return &ScoresFetchRequest{base: base{ScoresFetch, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *ScoresFetchRequest) Params() ScoresFetchParams {
	p := r.p
	p.BetterThan = copyInt64(p.BetterThan)
	p.WorseThan = copyInt64(p.WorseThan)
	return p
}

func (r *ScoresFetchRequest) query() interface{} { return r.p }

// ScoresGetRankParams holds the parameters of a scores/get-rank call.
type ScoresGetRankParams struct {
	GameID  string `url:"game_id"`
	Sort    int64  `url:"sort"`
	TableID int    `url:"table_id,omitempty"`
}

// ScoresGetRankRequest asks where a sort value would rank in a table.
type ScoresGetRankRequest struct {
	base
	p ScoresGetRankParams
}

// NewScoresGetRank returns a validated scores/get-rank request.
func NewScoresGetRank(p ScoresGetRankParams) (*ScoresGetRankRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	return &ScoresGetRankRequest{base: base{ScoresGetRank, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *ScoresGetRankRequest) Params() ScoresGetRankParams { return r.p }

func (r *ScoresGetRankRequest) query() interface{} { return r.p }

// gameParams is shared by the calls that only carry the game id.
type gameParams struct {
	GameID string `url:"game_id"`
}

// ScoresTablesRequest lists the score tables of a game.
type ScoresTablesRequest struct {
	base
}

// NewScoresTables returns a validated scores/tables request.
func NewScoresTables(gameID string) (*ScoresTablesRequest, error) {
	if err := checkGameID(gameID); err != nil {
		return nil, errors.Trace(err)
	}
	return &ScoresTablesRequest{base: base{ScoresTables, gameID}}, nil
}

func (r *ScoresTablesRequest) query() interface{} { return gameParams{r.gameID} }

// TimeFetchRequest asks for the current server time.
type TimeFetchRequest struct {
	base
}

// NewTimeFetch returns a validated time request.
func NewTimeFetch(gameID string) (*TimeFetchRequest, error) {
	if err := checkGameID(gameID); err != nil {
		return nil, errors.Trace(err)
	}
	return &TimeFetchRequest{base: base{TimeFetch, gameID}}, nil
}

func (r *TimeFetchRequest) query() interface{} { return gameParams{r.gameID} }

// userParams is shared by the calls that carry the game id and
// mandatory player credentials.
type userParams struct {
	GameID string `url:"game_id"`
	Credentials
}

// UserRequest is a call identified only by its endpoint and the player
// credentials: sessions/open, sessions/check, sessions/close, users/auth
// and friends.
type UserRequest struct {
	base
	creds Credentials
}

func newUserRequest(endpoint Endpoint, gameID string, creds Credentials) (*UserRequest, error) {
	if err := checkGameID(gameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := creds.validate(true); err != nil {
		return nil, errors.Trace(err)
	}
	return &UserRequest{base: base{endpoint, gameID}, creds: creds}, nil
}

// NewSessionsOpen returns a request opening a play session.
func NewSessionsOpen(gameID string, creds Credentials) (*UserRequest, error) {
	return newUserRequest(SessionsOpen, gameID, creds)
}

// NewSessionsCheck returns a request checking whether a session is open.
func NewSessionsCheck(gameID string, creds Credentials) (*UserRequest, error) {
	return newUserRequest(SessionsCheck, gameID, creds)
}

// NewSessionsClose returns a request closing the player's session.
func NewSessionsClose(gameID string, creds Credentials) (*UserRequest, error) {
	return newUserRequest(SessionsClose, gameID, creds)
}

// NewUsersAuth returns a request verifying the player's credentials.
func NewUsersAuth(gameID string, creds Credentials) (*UserRequest, error) {
	return newUserRequest(UsersAuth, gameID, creds)
}

// NewFriendsFetch returns a request listing the player's friends.
func NewFriendsFetch(gameID string, creds Credentials) (*UserRequest, error) {
	return newUserRequest(FriendsFetch, gameID, creds)
}

// Credentials returns the player credentials of the request.
func (r *UserRequest) Credentials() Credentials { return r.creds }

func (r *UserRequest) query() interface{} { return userParams{r.gameID, r.creds} }

// SessionsPingParams holds the parameters of a sessions/ping call.
type SessionsPingParams struct {
	GameID string `url:"game_id"`
	Credentials
	Status SessionStatus `url:"status,omitempty"`
}

// SessionsPingRequest keeps a session alive.
type SessionsPingRequest struct {
	base
	p SessionsPingParams
}

// NewSessionsPing returns a validated sessions/ping request.
func NewSessionsPing(p SessionsPingParams) (*SessionsPingRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(true); err != nil {
		return nil, errors.Trace(err)
	}
	if _, ok := sessionStatusNames[p.Status]; !ok && p.Status != SessionStatusUnset {
		return nil, errors.NotValidf("session status %d", int(p.Status))
	}
	return &SessionsPingRequest{base: base{SessionsPing, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *SessionsPingRequest) Params() SessionsPingParams { return r.p }

func (r *SessionsPingRequest) query() interface{} { return r.p }

// UsersFetchParams holds the parameters of a users fetch. Exactly one of
// Username or UserIDs must be set.
type UsersFetchParams struct {
	GameID   string `url:"game_id"`
	Username string `url:"username,omitempty"`
	UserIDs  []int  `url:"user_id,comma,omitempty"`
}

// UsersFetchRequest fetches public user records.
type UsersFetchRequest struct {
	base
	p UsersFetchParams
}

// NewUsersFetch returns a validated users fetch request.
func NewUsersFetch(p UsersFetchParams) (*UsersFetchRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	switch {
	case p.Username == "" && len(p.UserIDs) == 0:
		return nil, errors.NotValidf("users fetch without username or user ids")
	case p.Username != "" && len(p.UserIDs) > 0:
		return nil, errors.NotValidf("users fetch with both username and user ids")
	}
	p.UserIDs = copyInts(p.UserIDs)
	return &UsersFetchRequest{base: base{UsersFetch, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *UsersFetchRequest) Params() UsersFetchParams {
	p := r.p
	p.UserIDs = copyInts(p.UserIDs)
	return p
}

func (r *UsersFetchRequest) query() interface{} { return r.p }

// DataStoreParams holds the parameters of the data-store calls that only
// address a key: fetch and remove. Without credentials the global store
// is used.
type DataStoreParams struct {
	GameID string `url:"game_id"`
	Key    string `url:"key"`
	Credentials
}

// DataStoreRequest fetches or removes a single key.
type DataStoreRequest struct {
	base
	p DataStoreParams
}

func newDataStoreRequest(endpoint Endpoint, p DataStoreParams) (*DataStoreRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := checkKey(p.Key); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	return &DataStoreRequest{base: base{endpoint, p.GameID}, p: p}, nil
}

// NewDataStoreFetch returns a request reading a data-store key.
func NewDataStoreFetch(p DataStoreParams) (*DataStoreRequest, error) {
	return newDataStoreRequest(DataStoreFetch, p)
}

// NewDataStoreRemove returns a request deleting a data-store key.
func NewDataStoreRemove(p DataStoreParams) (*DataStoreRequest, error) {
	return newDataStoreRequest(DataStoreRemove, p)
}

// Params returns a copy of the request parameters.
func (r *DataStoreRequest) Params() DataStoreParams { return r.p }

func (r *DataStoreRequest) query() interface{} { return r.p }

// DataStoreSetParams holds the parameters of a data-store/set call.
type DataStoreSetParams struct {
	GameID string `url:"game_id"`
	Key    string `url:"key"`
	Data   string `url:"data"`
	Credentials
}

// DataStoreSetRequest stores data under a key.
type DataStoreSetRequest struct {
	base
	p DataStoreSetParams
}

// NewDataStoreSet returns a validated data-store/set request.
func NewDataStoreSet(p DataStoreSetParams) (*DataStoreSetRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := checkKey(p.Key); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	return &DataStoreSetRequest{base: base{DataStoreSet, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *DataStoreSetRequest) Params() DataStoreSetParams { return r.p }

func (r *DataStoreSetRequest) query() interface{} { return r.p }

// DataStoreUpdateParams holds the parameters of a data-store/update call.
type DataStoreUpdateParams struct {
	GameID    string    `url:"game_id"`
	Key       string    `url:"key"`
	Operation Operation `url:"operation"`
	Value     string    `url:"value"`
	Credentials
}

// DataStoreUpdateRequest applies an operation to a stored value.
type DataStoreUpdateRequest struct {
	base
	p DataStoreUpdateParams
}

// NewDataStoreUpdate returns a validated data-store/update request.
func NewDataStoreUpdate(p DataStoreUpdateParams) (*DataStoreUpdateRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := checkKey(p.Key); err != nil {
		return nil, errors.Trace(err)
	}
	if _, ok := operationNames[p.Operation]; !ok {
		return nil, errors.NotValidf("operation %d", int(p.Operation))
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	return &DataStoreUpdateRequest{base: base{DataStoreUpdate, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *DataStoreUpdateRequest) Params() DataStoreUpdateParams { return r.p }

func (r *DataStoreUpdateRequest) query() interface{} { return r.p }

// DataStoreGetKeysParams holds the parameters of a data-store/get-keys
// call.
type DataStoreGetKeysParams struct {
	GameID string `url:"game_id"`
	Credentials
	Pattern string `url:"pattern,omitempty"`
}

// DataStoreGetKeysRequest lists the keys of a data store.
type DataStoreGetKeysRequest struct {
	base
	p DataStoreGetKeysParams
}

// NewDataStoreGetKeys returns a validated data-store/get-keys request.
func NewDataStoreGetKeys(p DataStoreGetKeysParams) (*DataStoreGetKeysRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(false); err != nil {
		return nil, errors.Trace(err)
	}
	return &DataStoreGetKeysRequest{base: base{DataStoreGetKeys, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *DataStoreGetKeysRequest) Params() DataStoreGetKeysParams { return r.p }

func (r *DataStoreGetKeysRequest) query() interface{} { return r.p }

// TrophiesFetchParams holds the parameters of a trophies fetch. A nil
// Achieved returns every trophy.
type TrophiesFetchParams struct {
	GameID string `url:"game_id"`
	Credentials
	Achieved  *bool `url:"achieved,omitempty"`
	TrophyIDs []int `url:"trophy_id,comma,omitempty"`
}

// TrophiesFetchRequest lists trophies and whether the player holds them.
type TrophiesFetchRequest struct {
	base
	p TrophiesFetchParams
}

// NewTrophiesFetch returns a validated trophies fetch request.
func NewTrophiesFetch(p TrophiesFetchParams) (*TrophiesFetchRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(true); err != nil {
		return nil, errors.Trace(err)
	}
	if p.Achieved != nil && len(p.TrophyIDs) > 0 {
		return nil, errors.NotValidf("achieved filter with trophy ids")
	}
	p.Achieved = copyBool(p.Achieved)
	p.TrophyIDs = copyInts(p.TrophyIDs)
	return &TrophiesFetchRequest{base: base{TrophiesFetch, p.GameID}, p: p}, nil
}

// Params returns a copy of the request parameters.
func (r *TrophiesFetchRequest) Params() TrophiesFetchParams {
	p := r.p
	p.Achieved = copyBool(p.Achieved)
	p.TrophyIDs = copyInts(p.TrophyIDs)
	return p
}

func (r *TrophiesFetchRequest) query() interface{} { return r.p }

// TrophyParams holds the parameters of the calls granting or revoking one
// trophy.
type TrophyParams struct {
	GameID string `url:"game_id"`
	Credentials
	TrophyID int `url:"trophy_id"`
}

// TrophyRequest grants or revokes a trophy.
type TrophyRequest struct {
	base
	p TrophyParams
}

func newTrophyRequest(endpoint Endpoint, p TrophyParams) (*TrophyRequest, error) {
	if err := checkGameID(p.GameID); err != nil {
		return nil, errors.Trace(err)
	}
	if err := p.Credentials.validate(true); err != nil {
		return nil, errors.Trace(err)
	}
	if p.TrophyID <= 0 {
		return nil, errors.NotValidf("trophy id %d", p.TrophyID)
	}
	return &TrophyRequest{base: base{endpoint, p.GameID}, p: p}, nil
}

// NewTrophiesAddAchieved returns a request granting a trophy.
func NewTrophiesAddAchieved(p TrophyParams) (*TrophyRequest, error) {
	return newTrophyRequest(TrophiesAddAchieved, p)
}

// NewTrophiesRemoveAchieved returns a request revoking a trophy.
func NewTrophiesRemoveAchieved(p TrophyParams) (*TrophyRequest, error) {
	return newTrophyRequest(TrophiesRemoveAchieved, p)
}

// Params returns a copy of the request parameters.
func (r *TrophyRequest) Params() TrophyParams { return r.p }

func (r *TrophyRequest) query() interface{} { return r.p }

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInts(v []int) []int {
	if v == nil {
		return nil
	}
	return append([]int(nil), v...)
}
