package counter

// ChannelCounter serializes all access to the value through a single owner
// goroutine, communicating over channels instead of locking. Increments are
// buffered; Value performs a synchronous round trip so it observes every
// increment sent before it.
type ChannelCounter struct {
	incs  chan struct{}
	reads chan chan int64
	done  chan struct{}
}

// channelCounterBuffer sizes the increment channel. A large buffer keeps
// workers from serializing on the send itself.
const channelCounterBuffer = 1024

// NewChannelCounter returns a zeroed counter and starts its owner goroutine.
// Callers must Close the counter when done with it.
func NewChannelCounter() *ChannelCounter {
	c := &ChannelCounter{
		incs:  make(chan struct{}, channelCounterBuffer),
		reads: make(chan chan int64),
		done:  make(chan struct{}),
	}
	go c.loop()
	return c
}

// loop owns the value. It drains pending increments before answering a read
// so that Value reflects all increments enqueued before the read request.
func (c *ChannelCounter) loop() {
	var value int64
	for {
		select {
		case <-c.incs:
			value++
		case reply := <-c.reads:
			for {
				select {
				case <-c.incs:
					value++
					continue
				default:
				}
				break
			}
			reply <- value
		case <-c.done:
			return
		}
	}
}

// Name returns the strategy identifier.
func (c *ChannelCounter) Name() string { return StrategyChannel }

// Inc enqueues one increment to the owner goroutine.
func (c *ChannelCounter) Inc() {
	c.incs <- struct{}{}
}

// Value asks the owner goroutine for the current value.
func (c *ChannelCounter) Value() int64 {
	reply := make(chan int64)
	c.reads <- reply
	return <-reply
}

// Close stops the owner goroutine. The counter must not be used afterwards.
func (c *ChannelCounter) Close() error {
	close(c.done)
	return nil
}
