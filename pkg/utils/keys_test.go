package utils

import "testing"

func TestSessionKey(t *testing.T) {
	tests := []struct {
		name        string
		eventName   string
		round       int
		sessionType string
		want        string
	}{
		{
			name:      "spaces become underscores",
			eventName: "Monaco Grand Prix", round: 8, sessionType: "R",
			want: "race_Monaco_Grand_Prix_8_R",
		},
		{
			name:      "qualifying",
			eventName: "Monza", round: 16, sessionType: "Q",
			want: "race_Monza_16_Q",
		},
		{
			name:      "path separators become dashes",
			eventName: "Emilia/Romagna\\GP", round: 7, sessionType: "S",
			want: "race_Emilia-Romagna-GP_7_S",
		},
		{
			name:      "colon becomes dash",
			eventName: "Test: Session", round: 1, sessionType: "FP1",
			want: "race_Test-_Session_1_FP1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SessionKey(tt.eventName, tt.round, tt.sessionType)
			if got != tt.want {
				t.Errorf("SessionKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
