// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package request

// Endpoint identifies one operation of the game API.
type Endpoint int

const (
	ScoresAdd Endpoint = iota + 1
	ScoresFetch
	ScoresGetRank
	ScoresTables
	SessionsOpen
	SessionsPing
	SessionsCheck
	SessionsClose
	UsersAuth
	UsersFetch
	DataStoreFetch
	DataStoreSet
	DataStoreUpdate
	DataStoreRemove
	DataStoreGetKeys
	TrophiesFetch
	TrophiesAddAchieved
	TrophiesRemoveAchieved
	FriendsFetch
	TimeFetch
	Batch
)

var endpointPaths = map[Endpoint]string{
	ScoresAdd:              "/scores/add/",
	ScoresFetch:            "/scores/",
	ScoresGetRank:          "/scores/get-rank/",
	ScoresTables:           "/scores/tables/",
	SessionsOpen:           "/sessions/open/",
	SessionsPing:           "/sessions/ping/",
	SessionsCheck:          "/sessions/check/",
	SessionsClose:          "/sessions/close/",
	UsersAuth:              "/users/auth/",
	UsersFetch:             "/users/",
	DataStoreFetch:         "/data-store/",
	DataStoreSet:           "/data-store/set/",
	DataStoreUpdate:        "/data-store/update/",
	DataStoreRemove:        "/data-store/remove/",
	DataStoreGetKeys:       "/data-store/get-keys/",
	TrophiesFetch:          "/trophies/",
	TrophiesAddAchieved:    "/trophies/add-achieved/",
	TrophiesRemoveAchieved: "/trophies/remove-achieved/",
	FriendsFetch:           "/friends/",
	TimeFetch:              "/time/",
	Batch:                  "/batch/",
}

// endpointParams holds the order in which each endpoint's parameters are
// written to the query string. The server verifies signatures against the
// exact string, so this order must match the published reference and is
// not alphabetical.
var endpointParams = map[Endpoint][]string{
	ScoresAdd:              {"game_id", "username", "user_token", "guest", "score", "sort", "extra_data", "table_id"},
	ScoresFetch:            {"game_id", "username", "user_token", "guest", "limit", "table_id", "better_than", "worse_than"},
	ScoresGetRank:          {"game_id", "sort", "table_id"},
	ScoresTables:           {"game_id"},
	SessionsOpen:           {"game_id", "username", "user_token"},
	SessionsPing:           {"game_id", "username", "user_token", "status"},
	SessionsCheck:          {"game_id", "username", "user_token"},
	SessionsClose:          {"game_id", "username", "user_token"},
	UsersAuth:              {"game_id", "username", "user_token"},
	UsersFetch:             {"game_id", "username", "user_id"},
	DataStoreFetch:         {"game_id", "key", "username", "user_token"},
	DataStoreSet:           {"game_id", "key", "data", "username", "user_token"},
	DataStoreUpdate:        {"game_id", "key", "operation", "value", "username", "user_token"},
	DataStoreRemove:        {"game_id", "key", "username", "user_token"},
	DataStoreGetKeys:       {"game_id", "username", "user_token", "pattern"},
	TrophiesFetch:          {"game_id", "username", "user_token", "achieved", "trophy_id"},
	TrophiesAddAchieved:    {"game_id", "username", "user_token", "trophy_id"},
	TrophiesRemoveAchieved: {"game_id", "username", "user_token", "trophy_id"},
	FriendsFetch:           {"game_id", "username", "user_token"},
	TimeFetch:              {"game_id"},
	Batch:                  {"game_id", "parallel", "break_on_error", "requests[]"},
}

// Path returns the endpoint path relative to the versioned API root,
// including leading and trailing slashes.
func (e Endpoint) Path() string {
	return endpointPaths[e]
}

// String returns the endpoint path without its surrounding slashes, e.g.
// "scores/add". It is used for logging and metric labels.
func (e Endpoint) String() string {
	p := endpointPaths[e]
	if len(p) < 2 {
		return "unknown"
	}
	return p[1 : len(p)-1]
}

// Endpoints returns every endpoint in declaration order.
func Endpoints() []Endpoint {
	result := make([]Endpoint, 0, Batch)
	for e := ScoresAdd; e <= Batch; e++ {
		result = append(result, e)
	}
	return result
}
