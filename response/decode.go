// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package response decodes JSON answers of the game API into typed
// values.
//
// Every response carries a mandatory success flag and an optional
// message. Endpoint specific fields are only read from successful
// responses; a response reporting failure decodes to a value with an
// empty payload.
package response

import (
	"github.com/juju/errors"
	"github.com/juju/schema"

	"github.com/juju/gamejolt/request"
)

var resultChecker = schema.FieldMap(
	schema.Fields{
		"success": schema.Bool(),
		"message": schema.String(),
	},
	schema.Defaults{
		"message": "",
	},
)

// decoder describes the payload of one endpoint. Fields are coerced from
// the response only when it reports success; build receives a nil map
// otherwise.
type decoder struct {
	fields   schema.Fields
	defaults schema.Defaults
	build    func(Result, map[string]interface{}) Value
}

var decoders = map[request.Endpoint]decoder{
	request.ScoresAdd:              statusDecoder,
	request.ScoresFetch:            scoresDecoder,
	request.ScoresGetRank:          rankDecoder,
	request.ScoresTables:           tablesDecoder,
	request.SessionsOpen:           statusDecoder,
	request.SessionsPing:           statusDecoder,
	request.SessionsCheck:          statusDecoder,
	request.SessionsClose:          statusDecoder,
	request.UsersAuth:              statusDecoder,
	request.UsersFetch:             usersDecoder,
	request.DataStoreFetch:         dataDecoder,
	request.DataStoreSet:           statusDecoder,
	request.DataStoreUpdate:        dataDecoder,
	request.DataStoreRemove:        statusDecoder,
	request.DataStoreGetKeys:       keysDecoder,
	request.TrophiesFetch:          trophiesDecoder,
	request.TrophiesAddAchieved:    statusDecoder,
	request.TrophiesRemoveAchieved: statusDecoder,
	request.FriendsFetch:           friendsDecoder,
	request.TimeFetch:              timeDecoder,
}

// Decode produces the value answering req from a parsed response
// object, which may still be wrapped in its "response" envelope.
func Decode(req request.Request, source map[string]interface{}) (Value, error) {
	endpoint := req.Endpoint()
	d, ok := decoders[endpoint]
	if !ok {
		return nil, decodeError(endpoint, errors.NotSupportedf("endpoint %s", endpoint))
	}
	source = Unwrap(source)

	coerced, err := resultChecker.Coerce(source, nil)
	if err != nil {
		return nil, decodeError(endpoint, err)
	}
	valid := coerced.(map[string]interface{})
	result := Result{
		Success: valid["success"].(bool),
		Message: valid["message"].(string),
		request: req,
	}
	if !result.Success {
		return d.build(result, nil), nil
	}

	var payload map[string]interface{}
	if len(d.fields) > 0 {
		coerced, err := schema.FieldMap(d.fields, d.defaults).Coerce(source, nil)
		if err != nil {
			return nil, decodeError(endpoint, err)
		}
		payload = coerced.(map[string]interface{})
	}
	return d.build(result, payload), nil
}

// DecodeBody parses body and decodes it as the answer to req.
func DecodeBody(req request.Request, body []byte) (Value, error) {
	tree, err := Parse(body)
	if err != nil {
		return nil, decodeError(req.Endpoint(), err)
	}
	return Decode(req, tree)
}

var statusDecoder = decoder{
	build: func(r Result, _ map[string]interface{}) Value {
		return StatusValue{Result: r}
	},
}

var scoresDecoder = decoder{
	fields: schema.Fields{
		"scores": schema.List(schema.FieldMap(
			schema.Fields{
				"score":            schema.String(),
				"sort":             schema.Int(),
				"extra_data":       schema.String(),
				"user":             schema.String(),
				"user_id":          blankIntC{},
				"guest":            schema.String(),
				"stored":           schema.String(),
				"stored_timestamp": schema.Int(),
			},
			schema.Defaults{
				"extra_data":       "",
				"user":             "",
				"user_id":          int64(0),
				"guest":            "",
				"stored":           "",
				"stored_timestamp": int64(0),
			},
		)),
	},
	defaults: schema.Defaults{"scores": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "scores")
		scores := make([]Score, len(items))
		for i, item := range items {
			m := item.(map[string]interface{})
			scores[i] = Score{
				Score:           m["score"].(string),
				Sort:            m["sort"].(int64),
				ExtraData:       m["extra_data"].(string),
				User:            m["user"].(string),
				UserID:          m["user_id"].(int64),
				Guest:           m["guest"].(string),
				Stored:          m["stored"].(string),
				StoredTimestamp: m["stored_timestamp"].(int64),
			}
		}
		return ScoresValue{Result: r, Scores: scores}
	},
}

var rankDecoder = decoder{
	fields:   schema.Fields{"rank": schema.Int()},
	defaults: schema.Defaults{"rank": int64(0)},
	build: func(r Result, valid map[string]interface{}) Value {
		rank, _ := valid["rank"].(int64)
		return RankValue{Result: r, Rank: rank}
	},
}

var tablesDecoder = decoder{
	fields: schema.Fields{
		"tables": schema.List(schema.FieldMap(
			schema.Fields{
				"id":          schema.Int(),
				"name":        schema.String(),
				"description": schema.String(),
				"primary":     schema.Bool(),
			},
			schema.Defaults{
				"description": "",
				"primary":     false,
			},
		)),
	},
	defaults: schema.Defaults{"tables": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "tables")
		tables := make([]Table, len(items))
		for i, item := range items {
			m := item.(map[string]interface{})
			tables[i] = Table{
				ID:          m["id"].(int64),
				Name:        m["name"].(string),
				Description: m["description"].(string),
				Primary:     m["primary"].(bool),
			}
		}
		return TablesValue{Result: r, Tables: tables}
	},
}

var usersDecoder = decoder{
	fields: schema.Fields{
		"users": schema.List(schema.FieldMap(
			schema.Fields{
				"id":                       schema.Int(),
				"type":                     enum("user type", string(UserTypeUser), string(UserTypeDeveloper), string(UserTypeModerator), string(UserTypeAdministrator)),
				"username":                 schema.String(),
				"avatar_url":               schema.String(),
				"signed_up":                schema.String(),
				"signed_up_timestamp":      schema.Int(),
				"last_logged_in":           schema.String(),
				"last_logged_in_timestamp": schema.Int(),
				"status":                   enum("user status", string(UserStatusActive), string(UserStatusBanned)),
				"developer_name":           schema.String(),
				"developer_website":        schema.String(),
				"developer_description":    schema.String(),
			},
			schema.Defaults{
				"avatar_url":               "",
				"signed_up":                "",
				"signed_up_timestamp":      int64(0),
				"last_logged_in":           "",
				"last_logged_in_timestamp": int64(0),
				"developer_name":           "",
				"developer_website":        "",
				"developer_description":    "",
			},
		)),
	},
	defaults: schema.Defaults{"users": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "users")
		users := make([]User, len(items))
		for i, item := range items {
			m := item.(map[string]interface{})
			users[i] = User{
				ID:                    m["id"].(int64),
				Type:                  UserType(m["type"].(string)),
				Username:              m["username"].(string),
				AvatarURL:             m["avatar_url"].(string),
				SignedUp:              m["signed_up"].(string),
				SignedUpTimestamp:     m["signed_up_timestamp"].(int64),
				LastLoggedIn:          m["last_logged_in"].(string),
				LastLoggedInTimestamp: m["last_logged_in_timestamp"].(int64),
				Status:                UserStatus(m["status"].(string)),
				DeveloperName:         m["developer_name"].(string),
				DeveloperWebsite:      m["developer_website"].(string),
				DeveloperDescription:  m["developer_description"].(string),
			}
		}
		return UsersValue{Result: r, Users: users}
	},
}

var dataDecoder = decoder{
	fields: schema.Fields{"data": schema.String()},
	build: func(r Result, valid map[string]interface{}) Value {
		data, _ := valid["data"].(string)
		return DataValue{Result: r, Data: data}
	},
}

var keysDecoder = decoder{
	fields: schema.Fields{
		"keys": schema.List(schema.FieldMap(
			schema.Fields{"key": schema.String()},
			nil,
		)),
	},
	defaults: schema.Defaults{"keys": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "keys")
		keys := make([]string, len(items))
		for i, item := range items {
			keys[i] = item.(map[string]interface{})["key"].(string)
		}
		return KeysValue{Result: r, Keys: keys}
	},
}

var trophiesDecoder = decoder{
	fields: schema.Fields{
		"trophies": schema.List(schema.FieldMap(
			schema.Fields{
				"id":          schema.Int(),
				"title":       schema.String(),
				"description": schema.String(),
				"difficulty":  enum("difficulty", string(Bronze), string(Silver), string(Gold), string(Platinum)),
				"image_url":   schema.String(),
				"achieved":    schema.OneOf(schema.String(), schema.Bool()),
			},
			schema.Defaults{
				"description": "",
				"image_url":   "",
				"achieved":    "false",
			},
		)),
	},
	defaults: schema.Defaults{"trophies": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "trophies")
		trophies := make([]Trophy, len(items))
		for i, item := range items {
			m := item.(map[string]interface{})
			achieved, ok := m["achieved"].(string)
			if !ok {
				achieved = "false"
				if m["achieved"].(bool) {
					achieved = "true"
				}
			}
			trophies[i] = Trophy{
				ID:          m["id"].(int64),
				Title:       m["title"].(string),
				Description: m["description"].(string),
				Difficulty:  Difficulty(m["difficulty"].(string)),
				ImageURL:    m["image_url"].(string),
				Achieved:    achieved,
			}
		}
		return TrophiesValue{Result: r, Trophies: trophies}
	},
}

var friendsDecoder = decoder{
	fields: schema.Fields{
		"friends": schema.List(schema.FieldMap(
			schema.Fields{"friend_id": schema.Int()},
			nil,
		)),
	},
	defaults: schema.Defaults{"friends": schema.Omit},
	build: func(r Result, valid map[string]interface{}) Value {
		items := list(valid, "friends")
		ids := make([]int64, len(items))
		for i, item := range items {
			ids[i] = item.(map[string]interface{})["friend_id"].(int64)
		}
		return FriendsValue{Result: r, FriendIDs: ids}
	},
}

var timeDecoder = decoder{
	fields: schema.Fields{
		"timestamp": schema.Int(),
		"timezone":  schema.String(),
		"year":      schema.Int(),
		"month":     schema.Int(),
		"day":       schema.Int(),
		"hour":      schema.Int(),
		"minute":    schema.Int(),
		"second":    schema.Int(),
	},
	defaults: schema.Defaults{
		"timestamp": int64(0),
		"timezone":  "",
	},
	build: func(r Result, valid map[string]interface{}) Value {
		if valid == nil {
			return TimeValue{Result: r}
		}
		return TimeValue{
			Result:    r,
			Timestamp: valid["timestamp"].(int64),
			Timezone:  valid["timezone"].(string),
			Year:      int(valid["year"].(int64)),
			Month:     int(valid["month"].(int64)),
			Day:       int(valid["day"].(int64)),
			Hour:      int(valid["hour"].(int64)),
			Minute:    int(valid["minute"].(int64)),
			Second:    int(valid["second"].(int64)),
		}
	},
}

// list returns the coerced list under key, or nil when the server left it
// out.
func list(valid map[string]interface{}, key string) []interface{} {
	items, _ := valid[key].([]interface{})
	return items
}
