package model

// Player identifies one side of a game. Move selection lives elsewhere (a
// human front end or an engine player); the state machine only needs the
// identity to enforce turn order.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}
