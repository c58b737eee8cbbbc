// Package discon drives an externally compiled wind turbine controller that
// follows the Bladed DISCON calling convention:
//
//	void DISCON(float *avrSWAP, int *aviFAIL, char *accINFILE,
//	            char *avcOUTNAME, char *avcMSG)
//
// The controller and simulator talk through avrSWAP, a flat float array whose
// positions are fixed by the convention. [Swap] is the only code that knows
// those positions; everything else goes through its typed accessors.
//
// A [Bridge] owns one loaded controller together with its swap array, status
// word, file name strings and message area. Controllers keep native state
// between calls and are not reentrant, so a Bridge must not be shared between
// concurrent simulations. Release it with Close when the run ends:
//
//	b, err := discon.Dial("libdiscon.so", discon.Options{ParamFile: "DISCON.IN"})
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//	torque, pitch, err := b.Call(t, dt, prevPitch, genSpeed, rotorSpeed, windSpeed)
package discon
