// Package cli implements the fivet command-line client.
//
// Commands:
//
//	register   prompt for the account fields and a password, create the account
//	login      prompt for a login id or email and a password, print the access token
//	whoami     show the account behind the access token
//	delete     delete the account behind the access token
//	ping       check that the server answers
//
// whoami and delete take the token from -token or FIVET_TOKEN.
package cli
