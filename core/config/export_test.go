package config

var Reset = reset
