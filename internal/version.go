package internal

// Version is the tranx release version
const Version = "0.1.0"
