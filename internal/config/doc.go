// Package config resolves tranx settings from a YAML file, TRANX_
// environment variables and a .env file, and turns them into the
// configuration structs of the translation, speech and OCR packages.
// Credentials are only ever read from the environment or the config file.
package config
