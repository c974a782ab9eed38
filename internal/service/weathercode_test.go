package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{48, "Depositing rime fog"},
		{61, "Slight rain"},
		{77, "Snow grains"},
		{82, "Violent rain showers"},
		{99, "Thunderstorm with heavy hail"},
		{4, "Unknown"},
		{-1, "Unknown"},
		{100, "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WeatherDescription(tt.code), "code %d", tt.code)
	}
}

func TestWeatherDescriptionTableSize(t *testing.T) {
	assert.Len(t, weatherDescriptions, 24)
}
