package sgt

// Version identifies the on-disk node layout. Bump whenever the byte
// layout computed by deriveLayout changes incompatibly.
const Version = "0.1.0"
