// Package api provides the Battle.net WoW community API client.
//
// REST endpoints (all GET, keyed by an apikey query parameter):
//   - Realm status:  /realm/status
//   - Item info:     /item/{id}
//   - Auction data:  /auction/data/{realmSlug}, which points at a bulk
//     listings payload hosted on a separate URL
//
// Regional base URLs follow https://{region}.api.battle.net/wow.
package api
