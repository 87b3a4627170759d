// Package wizard tracks progress through a linear, forward-gated multi-step form.
//
// Completing a step records it and may schedule a deferred navigation to the
// next step. The navigation is executed by a reconcile pass that runs after the
// completed set has been updated, so the next step's guard always observes the
// new state.
//
//	t := wizard.New(nav)
//	t.CompleteStep(1, 2) // navigates to /employee-register/step2
//	t.GoToStep(4)        // ignored, step 3 is not completed
package wizard
