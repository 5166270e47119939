// Message handlers
//
// Copyright (c) 2022  The go-fpc authors
//
// This file is part of go-fpc.
//
// go-fpc is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-fpc is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-fpc. If not, see
// <http://www.gnu.org/licenses/>

package web

import (
	"time"

	fpc "go-fpc"
	"go-fpc/board"
	"go-fpc/game"
	"go-fpc/proto"
)

// handler reacts to one inbound PDU.  The protocol is forgiving:
// messages that make no sense in the peer's current state are
// answered with a typed error where the family has one, and silently
// dropped otherwise.
type handler struct {
	reg *game.Registry
}

func (h handler) dispatch(p *game.Peer, pdu *proto.Pdu) {
	switch {
	case pdu.Handshake != nil:
		h.handshake(p, pdu.Handshake)
	case pdu.MatchmakingQueue != nil:
		h.matchmaking(p, pdu.MatchmakingQueue)
	case pdu.GameSession != nil:
		h.session(p, pdu.GameSession)
	}
}

func (h handler) handshake(p *game.Peer, m *proto.Handshake) {
	switch {
	case m.GetInfo != nil && m.GetInfo.Request != nil:
		h.send(p, proto.MakeGetInfoOk())

	case m.Connect != nil && m.Connect.Client != nil:
		client := m.Connect.Client
		if s, _ := p.State(); s != game.StateUnknown {
			return
		}
		if client.Protocol.Version != fpc.ProtocolVersion {
			h.send(p, proto.MakeConnectError(
				"server only speaks protocol version "+
					fpc.ProtocolVersion))
			return
		}
		prior := p.CompleteHandshake(game.ClientInfo{
			Name:     client.Name,
			Version:  client.Version,
			Protocol: client.Protocol.Version,
		})
		if prior != game.StateUnknown {
			return
		}
		h.reg.MoveToBucket(p, game.StateIdle)
		h.send(p, proto.MakeConnectOk())
	}
}

func (h handler) matchmaking(p *game.Peer, m *proto.MatchmakingQueue) {
	switch {
	case m.PlayerRegister != nil && m.PlayerRegister.Name != nil:
		name := *m.PlayerRegister.Name
		if name == "" {
			h.send(p, proto.MakeRegisterError(&proto.PlayerRegisterError{
				BadName: &proto.Desc{Description: "empty player name"},
			}))
			return
		}
		switch prior := p.EnterQueue(name, time.Now()); prior {
		case game.StateIdle:
			h.reg.MoveToBucket(p, game.StateMMQueue)
			h.send(p, proto.MakeRegisterOk())
		case game.StateUnknown:
			h.send(p, proto.MakeRegisterError(&proto.PlayerRegisterError{
				Handshake: &proto.Desc{Description: "handshake not completed"},
			}))
		default:
			h.send(p, proto.MakeRegisterError(&proto.PlayerRegisterError{
				AlreadyRegistered: &proto.Desc{Description: "already registered"},
			}))
		}

	case m.PlayerLeave != nil:
		if p.LeaveQueue() {
			h.reg.MoveToBucket(p, game.StateIdle)
		}

	case m.HeartbeatCheck != nil:
		if p.AcknowledgeHeartbeat(time.Now()) {
			h.reg.MoveToBucket(p, game.StateHeartbeatReady)
		}
	}
}

func (h handler) session(p *game.Peer, m *proto.GameSession) {
	if m.Move == nil {
		return
	}
	mv, ok := moveFromPdu(m.Move)
	if !ok {
		// no_move, error and unrecognised variants
		return
	}
	g, color, seated := p.CurrentGame()
	if !seated {
		return
	}
	if err := g.SubmitMove(color, *m.Move, mv, time.Now()); err != nil {
		h.send(p, proto.MakeMoveError(err.Error()))
	}
}

func (h handler) send(p *game.Peer, pdu *proto.Pdu) {
	if err := p.Send(pdu); err != nil {
		fpc.Debug.Printf("Cannot reply to %s: %s", p, err)
	}
}

// moveFromPdu translates a wire move into its rule-engine form.
func moveFromPdu(m *proto.Move) (board.Move, bool) {
	switch {
	case m.Basic != nil:
		return board.Move{
			Kind: board.MoveBasic,
			From: m.Basic.From,
			To:   m.Basic.To,
		}, true
	case m.Capture != nil:
		return board.Move{
			Kind: board.MoveCapture,
			From: m.Capture.From,
			To:   m.Capture.To,
		}, true
	case m.Promotion != nil:
		return board.Move{
			Kind:    board.MovePromotion,
			From:    m.Promotion.From,
			To:      m.Promotion.To,
			Promote: m.Promotion.Figure,
		}, true
	case m.Castling != nil:
		return board.Move{
			Kind:     board.MoveCastling,
			From:     m.Castling.KingFrom,
			To:       m.Castling.KingTo,
			RookFrom: m.Castling.RookFrom,
			RookTo:   m.Castling.RookTo,
		}, true
	default:
		return board.Move{}, false
	}
}
