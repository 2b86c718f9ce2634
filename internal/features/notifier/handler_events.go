// Package notifier is the delivery stand-in for out-of-band messages:
// it subscribes to domain events and logs what a mailer or chat bot
// would send in a full deployment.
package notifier

import (
	"log"
	"sync"

	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.notifier"

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	AddressChSize uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG' or 'EventEngine' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	// subscribe before the listen goroutine starts so wiring order in
	// the server stays the only ordering constraint
	he.addSubscriptions()

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine
	// closes the addressCh on shutdown
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.ResetTokenIssuedEvent:
			h.resetTokenIssuedEventHandler(ne)

		case *event.ProductQuantityUpdatedEvent:
			h.productQuantityUpdatedEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) resetTokenIssuedEventHandler(newEvent *event.ResetTokenIssuedEvent) {
	// a mailer would send this link to newEvent.Email
	log.Printf(
		"password recovery for %s <%s>: /api/v1/admin/reset-password/%s",
		newEvent.Username,
		newEvent.Email,
		newEvent.Token,
	)
}

func (h *handlerEvents) productQuantityUpdatedEventHandler(newEvent *event.ProductQuantityUpdatedEvent) {
	if newEvent.Quantity > 0 {
		return
	}

	log.Printf(
		"product '%s' (%s) is out of stock",
		newEvent.Name,
		newEvent.ProductID,
	)
}

// addSubscriptions iterates over subscribeToEventNames and subscribes
// to each event with this handler's addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [2]event.EventName{
		event.ResetTokenIssuedEventName,
		event.ProductQuantityUpdatedEventName,
	}

	for _, eventName := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s'\nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
