package room

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"cardroom-server/internal/config"
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/game"
	"cardroom-server/pkg/poker/variant"
	"cardroom-server/pkg/table"
)

type state int

const (
	stateClientEvent state = iota
	stateHandEvent
	stateHandEnded
)

const persistAttempts = 5
const persistRetryDelay = time.Second * 2

// Dealer owns one table's live state. Every mutation of the hand happens on
// its run loop, so concurrent action requests are applied one at a time.
type Dealer struct {
	pitBoss *PitBoss
	table   *table.Table
	clients map[*Client]bool
	lock    sync.RWMutex

	// hand is the hand in progress, or the last settled hand until the
	// next one starts. Only the run loop may touch it.
	hand       *game.Hand
	handRecord *table.Hand

	// settledStacks carries each player's stack from the last settlement.
	// The database write is asynchronous, so the next hand must source
	// stacks from here rather than from a possibly-stale read.
	settledStacks map[int64]int

	// turnClock is how long the acting player has before a synthetic
	// check or fold is applied. Zero disables the clock.
	turnClock    time.Duration
	turnTimer    *time.Timer
	pendingStart *time.Timer

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *table.Table) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		table:         table,
		clients:       make(map[*Client]bool),
		settledStacks: make(map[int64]int),
		turnClock:     time.Duration(config.Instance().TurnClock) * time.Second,
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.table.UUID,
		"name": d.table.Name,
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendPlayerData()
			case stateHandEvent:
				d.sendHandState()
				d.resetTurnClock()
			case stateHandEnded:
				d.sendHandState()
				d.sendPlayerData()
				d.resetTurnClock()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			if d.turnTimer != nil {
				d.turnTimer.Stop()
			}
			if d.pendingStart != nil {
				d.pendingStart.Stop()
			}

			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if d.hand == nil {
			return
		}

		client.Send(&Response{
			Key:  "hand",
			Data: d.hand.Snapshot(client.player.ID),
		})
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// resetTurnClock arms the turn clock for the acting player.
// Must only be called from the run loop.
func (d *Dealer) resetTurnClock() {
	if d.turnTimer != nil {
		d.turnTimer.Stop()
		d.turnTimer = nil
	}

	if d.turnClock <= 0 || d.hand == nil || d.hand.State() != game.StateInProgress {
		return
	}

	playerID := d.hand.ActingPlayer()
	if playerID == 0 {
		return
	}

	d.turnTimer = time.AfterFunc(d.turnClock, func() {
		d.TurnExpired(playerID)
	})
}

// TurnExpired converts an expired turn clock into a synthetic check or fold
// through the same validated action path as a live request
func (d *Dealer) TurnExpired(playerID int64) {
	d.execInRunLoop <- func() {
		if d.hand == nil || d.hand.State() != game.StateInProgress {
			return
		}

		// the action may have arrived just before the clock fired
		if d.hand.ActingPlayer() != playerID {
			return
		}

		if err := d.hand.ApplyTimeout(playerID); err != nil {
			logrus.WithError(err).WithField("player", playerID).Warn("could not time out turn")
			return
		}

		d.stateChanged <- stateHandEvent
		d.checkHandEnd()
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "startHand":
		d.execInRunLoop <- func() {
			if err := d.scheduleStart(c, msg); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
			}
		}
	case "runItTwice":
		d.execInRunLoop <- func() {
			if d.hand == nil {
				c.Send(newErrorResponse(msg.Context, errNoHandInProgress))
				return
			}

			times, ok := msg.AdditionalData.GetInt("times")
			if !ok {
				times = 2
			}

			if err := d.hand.ElectRunItTimes(times); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
		}
	case "rabbitHunt":
		d.execInRunLoop <- func() {
			if d.hand == nil || d.hand.State() == game.StateInProgress {
				c.Send(newErrorResponse(msg.Context, table.UserError("the hand is still being played")))
				return
			}

			count, ok := msg.AdditionalData.GetInt("count")
			if !ok {
				count = 1
			}

			c.Send(&Response{
				Key:     "rabbitHunt",
				Data:    deck.CardsToString(d.hand.RabbitHunt(count)),
				Context: msg.Context,
			})
		}
	case "playerStatus":
		d.execInRunLoop <- func() {
			pt, err := c.player.GetPlayerTable(context.Background(), d.table)
			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			isActive, ok := msg.AdditionalData.GetBool("active")
			if !ok {
				c.Send(newErrorResponse(msg.Context, table.UserError("active is not boolean")))
				return
			}

			if err := pt.SetActive(context.Background(), isActive); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	case "leave":
		d.execInRunLoop <- func() {
			if err := d.leaveTable(c); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	default:
		action, err := game.ActionFromString(msg.Action)
		if err != nil {
			logrus.WithField("msg", msg).Warn("unknown message")
			c.Send(newErrorResponse(msg.Context, table.UserError("unknown action")))
			return
		}

		d.execInRunLoop <- func() {
			d.applyAction(c, msg, action)
		}
	}
}

// applyAction funnels one player decision into the hand and broadcasts the
// outcome. Must only be called from the run loop.
func (d *Dealer) applyAction(c *Client, msg *PayloadIn, action game.Action) {
	if d.hand == nil || d.hand.State() != game.StateInProgress {
		c.Send(newErrorResponse(msg.Context, errNoHandInProgress))
		return
	}

	amount, _ := msg.AdditionalData.GetInt("amount")
	if err := d.hand.Apply(c.player.ID, action, amount); err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context))
	d.stateChanged <- stateHandEvent
	d.checkHandEnd()
}

var errNoHandInProgress = table.UserError("no hand in progress")

// scheduleStart deals a new hand, after a short delay so seated players see
// it coming. Must only be called from the run loop.
func (d *Dealer) scheduleStart(c *Client, msg *PayloadIn) error {
	if d.hand != nil && d.hand.State() == game.StateInProgress {
		return table.UserError("a hand is already in progress")
	}

	if d.pendingStart != nil {
		return table.UserError("a hand is already scheduled")
	}

	delay := config.Instance().StartHandDelay
	if delay <= 0 {
		if err := d.startHand(msg.AdditionalData); err != nil {
			return err
		}

		c.Send(OK(msg.Context))
		d.stateChanged <- stateHandEvent
		return nil
	}

	data := msg.AdditionalData
	d.pendingStart = time.AfterFunc(time.Duration(delay)*time.Second, func() {
		d.execInRunLoop <- func() {
			d.pendingStart = nil
			if err := d.startHand(data); err != nil {
				d.broadcast(newErrorResponse("", err))
				return
			}

			d.stateChanged <- stateHandEvent
		}
	})

	c.Send(OK(msg.Context))
	d.broadcast(&Response{Key: "scheduledStart", Data: delay})
	return nil
}

func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// startHand deals a new hand for the table's active players.
// Must only be called from the run loop.
func (d *Dealer) startHand(data AdditionalData) error {
	if d.hand != nil && d.hand.State() == game.StateInProgress {
		return table.UserError("a hand is already in progress")
	}

	ctx := context.Background()
	players, err := d.table.GetActivePlayers(ctx)
	if err != nil {
		return err
	}

	gamePlayers := seatedPlayers(players, d.settledStacks)
	if len(gamePlayers) < 2 {
		return table.UserError("at least two active players with chips are required")
	}

	gameType, err := variant.GameTypeFromKey(d.table.GameType)
	if err != nil {
		return err
	}

	// the button moves one seat per hand
	count, err := d.table.GetHandsCount(ctx)
	if err != nil {
		return err
	}
	dealerIndex := int(count % int64(len(gamePlayers)))

	opts := game.DefaultOptions(gameType)
	if smallBlind, ok := data.GetInt("smallBlind"); ok {
		opts.SmallBlind = smallBlind
	}
	if bigBlind, ok := data.GetInt("bigBlind"); ok {
		opts.BigBlind = bigBlind
	}
	if ante, ok := data.GetInt("ante"); ok {
		opts.Ante = ante
	}

	logger := logrus.WithField("uuid", d.table.UUID)
	hand, err := game.New(logger, gamePlayers, dealerIndex, opts)
	if err != nil {
		return err
	}

	record, err := d.table.CreateHand(ctx, hand.ID().String())
	if err != nil {
		return err
	}

	d.hand = hand
	d.handRecord = record
	return nil
}

// seatedPlayers builds the next hand's entrants. The last settlement's stacks
// take precedence over the database read, which may not reflect an in-flight
// hand-end write, and players without chips sit out.
func seatedPlayers(players []*table.PlayerTable, settled map[int64]int) []game.Player {
	gamePlayers := make([]game.Player, 0, len(players))
	for _, player := range players {
		stack := player.Stack
		if settledStack, ok := settled[player.PlayerID]; ok {
			stack = settledStack
		}

		if stack <= 0 {
			continue
		}

		gamePlayers = append(gamePlayers, game.Player{
			PlayerID:   player.PlayerID,
			SeatNumber: player.SeatNumber,
			Stack:      stack,
		})
	}

	return gamePlayers
}

// checkHandEnd persists the settlement once the hand is over.
// Must only be called from the run loop.
func (d *Dealer) checkHandEnd() {
	if d.hand == nil || d.hand.State() == game.StateInProgress {
		return
	}

	record := d.handRecord
	if record == nil {
		return
	}
	d.handRecord = nil

	result := d.hand.Result()
	board := boardString(result.Boards)
	log := d.hand.Log()
	stacks := d.hand.Stacks()

	for id, stack := range stacks {
		d.settledStacks[id] = stack
	}

	// the in-memory settlement is authoritative; the write retries in the
	// background and never re-settles
	go persistHand(record, board, log, result.Payouts, stacks)

	d.stateChanged <- stateHandEnded
}

func persistHand(record *table.Hand, board string, log interface{}, winnings map[int64]int, stacks map[int64]int) {
	logger := logrus.WithField("hand", record.UUID)
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		if err := record.End(context.Background(), board, log, winnings, stacks); err != nil {
			logger.WithError(err).WithField("attempt", attempt).Error("could not save hand")
			time.Sleep(persistRetryDelay)
			continue
		}

		return
	}

	logger.Error("giving up saving hand")
}

func boardString(boards []deck.Hand) string {
	strs := ""
	for i, board := range boards {
		if i > 0 {
			strs += ";"
		}

		strs += deck.CardsToString(board)
	}

	return strs
}

// leaveTable removes a player's seat between hands.
// Must only be called from the run loop.
func (d *Dealer) leaveTable(c *Client) error {
	if d.hand != nil && d.hand.State() == game.StateInProgress {
		// a mid-hand disconnect keeps the seat until the hand ends
		return table.UserError("you cannot leave during a hand")
	}

	pt, err := c.player.GetPlayerTable(context.Background(), d.table)
	if err != nil {
		return err
	}

	if err := pt.Leave(context.Background()); err != nil {
		return err
	}

	// the seat is gone; a re-join buys in fresh, so the database row is
	// authoritative again
	delete(d.settledStacks, pt.PlayerID)
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendHandState() {
	if d.hand == nil {
		return
	}

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "hand",
			Data: d.hand.Snapshot(client.player.ID),
		})
	}
}

func (d *Dealer) sendPlayerData() {
	players, err := d.table.GetPlayers(context.Background())
	if err != nil {
		logrus.WithField("uuid", d.table.UUID).WithError(err).Error("could not get players")
		return
	}

	connectedClients := make(map[int64]*table.Player)
	for _, client := range d.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	csPlayers := make(map[int64]*clientStatePlayer)
	for _, player := range players {
		_, isConnected := connectedClients[player.PlayerID]
		delete(connectedClients, player.PlayerID)
		csPlayers[player.PlayerID] = &clientStatePlayer{
			PlayerTable: player,
			IsConnected: isConnected,
			IsSeated:    true,
		}
	}

	for _, player := range connectedClients {
		csPlayers[player.ID] = &clientStatePlayer{
			PlayerTable: &table.PlayerTable{
				Player:    player,
				PlayerID:  player.ID,
				TableUUID: d.table.UUID,
			},
			IsConnected: true,
			IsSeated:    false,
		}
	}

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "clientState",
			Data: csPlayers,
		})
	}
}

type clientStatePlayer struct {
	*table.PlayerTable
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
}
