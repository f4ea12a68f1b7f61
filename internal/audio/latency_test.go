package audio

import (
	"testing"
	"time"
)

func TestVoiceStartsWithin50ms(t *testing.T) {
	m := newMixer(testRate)
	m.ScheduleAt(NewToneVoice(chime(), testRate), m.Now())
	samples := readSamples(m, testRate/10) // 0.1s of 16-bit mono
	first := -1
	for i, v := range samples {
		if v != 0 {
			first = i
			break
		}
	}
	if first == -1 {
		t.Fatalf("no audio produced")
	}
	delay := time.Duration(first) * time.Second / testRate
	if delay > 50*time.Millisecond {
		t.Fatalf("start delay %v exceeds 50ms", delay)
	}
}

func TestOffsetVoiceHonoursSessionClock(t *testing.T) {
	m := newMixer(testRate)
	readSamples(m, testRate/20) // clock at 50ms
	now := m.Now()
	m.ScheduleAt(NewToneVoice(chime(), testRate), now+0.15)
	samples := readSamples(m, testRate/4)
	first := -1
	for i, v := range samples {
		if v != 0 {
			first = i
			break
		}
	}
	want := int(0.15 * testRate)
	if first < want || first > want+testRate/1000 {
		t.Fatalf("expected onset near sample %d, got %d", want, first)
	}
}
