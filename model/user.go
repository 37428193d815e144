package model

/*

User is a member of the social network, also used as the Session User (the
locally held identity of whoever is currently logged in)

ID: primary identifier assigned by the backend
Name: display name shown on posts, nav and profile
Email: login email
Avatar: absolute URL of the avatar image
Bio: optional profile bio, empty when the user never set one
Followers / Following: optional counters, zero when the backend omits them

*/

type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio,omitempty"`
	Followers int    `json:"followers,omitempty"`
	Following int    `json:"following,omitempty"`
}
