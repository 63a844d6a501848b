package registry

import (
	_ "github.com/Alia5/padcore/device/hid"      // Register generic HID encoder
	_ "github.com/Alia5/padcore/device/keyboard" // Register keyboard encoder
	_ "github.com/Alia5/padcore/device/nswitch"  // Register Switch encoder
	_ "github.com/Alia5/padcore/device/ps4"      // Register PS4 encoder
	_ "github.com/Alia5/padcore/device/xinput"   // Register XInput encoder
)
