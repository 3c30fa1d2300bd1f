package boot

// Banner is the identification line logged first by Boot.
const Banner = "L0 Bootloader"

// NoTransfer is logged before halting when no transfer is available.
const NoTransfer = "no control transfer on this target, halted"

// Transfer loads sp into the stack pointer and branches to entry.
// A Transfer never returns.
type Transfer func(sp, entry uint32)

// Boot performs the boot handoff to a single partition.
type Boot struct {
	partition Addr
	logger    Logger
	mem       Memory
	transfer  Transfer
}

// New creates a Boot for the partition starting at address partition.
// The address is not validated.
func New(partition Addr) *Boot {
	return &Boot{
		partition: partition,
		logger:    NoOp,
		mem:       RawMemory,
		transfer:  platformTransfer,
	}
}

// WithLogger sets the logger. The logger must outlive the boot attempt.
// nil restores NoOp.
func (b *Boot) WithLogger(logger Logger) *Boot {
	if logger == nil {
		logger = NoOp
	}
	b.logger = logger
	return b
}

// WithMemory replaces the memory the header is read from.
func (b *Boot) WithMemory(mem Memory) *Boot {
	if mem == nil {
		mem = RawMemory
	}
	b.mem = mem
	return b
}

// WithTransfer replaces the control transfer routine.
// nil restores the platform transfer.
func (b *Boot) WithTransfer(transfer Transfer) *Boot {
	if transfer == nil {
		transfer = platformTransfer
	}
	b.transfer = transfer
	return b
}

// Partition returns the partition address.
func (b *Boot) Partition() Addr {
	return b.partition
}

// Header reads the partition header.
func (b *Boot) Header() Header {
	return ReadHeader(b.mem, b.partition)
}

// Boot logs the banner, reads the partition header and transfers control
// to the partition. It never returns.
func (b *Boot) Boot() {
	LogLine(b.logger, Banner)
	h := b.Header()
	b.logger.Logf("sp=0x%08x reset=0x%08x\n", h.SP, h.Entry)
	if b.transfer == nil {
		LogLine(b.logger, NoTransfer)
		halt()
	}
	b.transfer(h.SP, h.Entry)
	halt()
}

// halt parks the CPU. It is reached when there is no transfer or
// a transfer comes back.
var halt = func() {
	for {
	}
}
