package updown

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	s := richState(t)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("state did not survive the persistence round trip")
	}
}

func TestDecodeStateRejectsCorruptBlobs(t *testing.T) {
	good := richState(t)

	corrupt := func(mutate func(*GameState)) []byte {
		s := good.Clone()
		mutate(&s)
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	cases := map[string][]byte{
		"not json":      []byte("{"),
		"empty object":  []byte("{}"),
		"unknown phase": corrupt(func(s *GameState) { s.Phase = "shuffling" }),
		"three players": corrupt(func(s *GameState) { s.Players = s.Players[:3] }),
		"seat overflow": corrupt(func(s *GameState) { s.DealerIndex = 7 }),
		"deal overflow": corrupt(func(s *GameState) { s.DealNumber = 29 }),
		"bogus card": corrupt(func(s *GameState) {
			s.Players[1].Hand[0].Suit = "X"
		}),
		"bid out of range": corrupt(func(s *GameState) {
			big := 12
			s.Bids[2] = &big
		}),
		"card loss": corrupt(func(s *GameState) {
			s.Players[0].Hand = s.Players[0].Hand[1:]
		}),
		"phantom trick": corrupt(func(s *GameState) {
			s.Players[3].TricksTaken = 8
		}),
	}
	for name, data := range cases {
		if _, err := DecodeState(data); err == nil {
			t.Errorf("%s: decode accepted a corrupt blob", name)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(5)))
	s := testMatch()
	s.DealNumber = 3
	s = e.StartDeal(s)

	cp := s.Clone()
	cp.Players[0].Hand[0].Suit = "X"
	three := 3
	cp.Bids[1] = &three
	cp.Players[2].Score = 99

	if s.Players[0].Hand[0].Suit == "X" {
		t.Fatalf("clone shares hand storage with the original")
	}
	if s.Bids[1] != nil {
		t.Fatalf("clone shares bid pointers with the original")
	}
	if s.Players[2].Score == 99 {
		t.Fatalf("clone shares player storage with the original")
	}
}

func TestNewMatchShape(t *testing.T) {
	s := NewMatch([NumSeats]string{"a", "b", "c", "d"})
	if s.DealNumber != 1 {
		t.Fatalf("deal number = %d, want 1", s.DealNumber)
	}
	if s.DealerIndex != NumSeats-1 {
		t.Fatalf("dealer = %d, want %d", s.DealerIndex, NumSeats-1)
	}
	if s.CurrentPlayerIndex != 0 {
		t.Fatalf("seat 0 must act first in deal 1")
	}
	for i, p := range s.Players {
		if p.Hand == nil || len(p.Hand) != 0 {
			t.Fatalf("seat %d hand not an empty slice", i)
		}
	}
}
